package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/mattn/go-colorable"

	"mcpwm/core"
	"mcpwm/host/config"
	"mcpwm/host/mcu"
)

var (
	configPath = flag.String("config", "", "JSON config file")
	device     = flag.String("device", "", "Serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "Baud rate (overrides config)")
	offline    = flag.Bool("offline", false, "Do not open the serial port, only offline commands work")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
)

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorCyan  = "\x1b[36m"
)

// shell holds the interactive session state
type shell struct {
	out    io.Writer
	cfg    *config.HostConfig
	client *mcu.Client
}

func main() {
	flag.Parse()

	out := colorable.NewColorableStdout()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(colorable.NewColorableStderr(), "%sError:%s %v\n", colorRed, colorReset, err)
		os.Exit(1)
	}

	fmt.Fprintln(out, "MCPWM Host - ESP32 motor-control PWM inspector")
	fmt.Fprintln(out, "==============================================")

	sh := &shell{out: out, cfg: cfg}
	if !*offline {
		fmt.Fprintf(out, "Connecting to %s at %d baud...\n", cfg.Device, cfg.Baud)
		client, err := mcu.Dial(cfg.Serial())
		if err != nil {
			sh.errorf("failed to connect: %v", err)
			os.Exit(1)
		}
		defer client.Close()
		sh.client = client
		fmt.Fprintf(out, "%sConnected%s\n", colorGreen, colorReset)
	}

	fmt.Fprintln(out, "Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		args, err := shlex.Split(scanner.Text())
		if err != nil {
			sh.errorf("%v", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		if args[0] == "quit" || args[0] == "exit" || args[0] == "q" {
			fmt.Fprintln(out, "Goodbye!")
			return
		}
		if err := sh.run(args); err != nil {
			sh.errorf("%v", err)
		}
	}

	if err := scanner.Err(); err != nil {
		sh.errorf("reading input: %v", err)
		os.Exit(1)
	}
}

// loadConfig reads -config if given and applies flag overrides
func loadConfig() (*config.HostConfig, error) {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			return nil, err
		}
	}
	if *device != "" {
		cfg.Device = *device
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}
	if *verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func (s *shell) errorf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, "%sError:%s %s\n", colorRed, colorReset, fmt.Sprintf(format, args...))
}

func (s *shell) run(args []string) error {
	switch args[0] {
	case "help", "?":
		s.printHelp()
		return nil
	case "calc":
		return s.calc(args[1:])
	case "info":
		return s.info()
	case "freq":
		return s.freq(args[1:])
	case "signals":
		return s.signals(args[1:])
	}
	return fmt.Errorf("unknown command: %s (type 'help' for available commands)", args[0])
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, "\nAvailable commands:")
	fmt.Fprintln(s.out, "  help                                   - Show this help message")
	fmt.Fprintln(s.out, "  info                                   - Query instance and clocks")
	fmt.Fprintln(s.out, "  freq <timer> <mode> <prescaler> <period> - Query a timer output frequency")
	fmt.Fprintln(s.out, "  signals [operator]                     - Query operator output signals")
	fmt.Fprintln(s.out, "  calc <mode> <prescaler> <period>       - Compute a frequency offline")
	fmt.Fprintln(s.out, "  quit/exit/q                            - Exit the program")
	fmt.Fprintln(s.out, "\nModes: increase, decrease, up-down")
	fmt.Fprintln(s.out)
}

func (s *shell) connected() error {
	if s.client == nil {
		return errors.New("offline: command needs a firmware connection")
	}
	return nil
}

func (s *shell) info() error {
	if err := s.connected(); err != nil {
		return err
	}
	info, err := s.client.Info()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s%s%s block=0x%08X\n", colorCyan, info.Instance(), colorReset, info.Block)
	fmt.Fprintf(s.out, "  source clock: %d Hz\n", info.SourceClock)
	fmt.Fprintf(s.out, "  prescaler:    %d\n", info.Prescaler)
	fmt.Fprintf(s.out, "  pwm clock:    %d Hz\n", info.PwmClock)
	return nil
}

func (s *shell) freq(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: freq <timer> <mode> <prescaler> <period>")
	}
	if err := s.connected(); err != nil {
		return err
	}

	timer, err := parseUint(args[0], 8)
	if err != nil {
		return fmt.Errorf("timer: %w", err)
	}
	mode, prescaler, period, err := parseTimerArgs(args[1:])
	if err != nil {
		return err
	}

	hz, err := s.client.TimerFreq(uint8(timer), mode, prescaler, period)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "timer%d %s: %s%d Hz%s\n", timer, mode, colorGreen, hz, colorReset)
	return nil
}

func (s *shell) signals(args []string) error {
	if err := s.connected(); err != nil {
		return err
	}

	operators := []uint8{0, 1, 2}
	if len(args) > 0 {
		op, err := parseUint(args[0], 8)
		if err != nil {
			return fmt.Errorf("operator: %w", err)
		}
		operators = []uint8{uint8(op)}
	}

	for _, op := range operators {
		a, b, err := s.client.Signals(op)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "operator%d: A=%d B=%d\n", op, a, b)
	}
	return nil
}

// calc evaluates the frequency formula with the configured clock tree
func (s *shell) calc(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: calc <mode> <prescaler> <period>")
	}
	mode, prescaler, period, err := parseTimerArgs(args)
	if err != nil {
		return err
	}

	clk := s.cfg.PwmClock()
	hz := clk.TimerFrequency(mode, prescaler, period)
	if s.cfg.Verbose {
		fmt.Fprintf(s.out, "%s=%d Hz prescaler=%d pwm_clk=%d Hz\n",
			core.PwmClockSourceName, core.PwmSourceClock(s.cfg.Clocks()), s.cfg.Prescaler, clk.Frequency())
	}
	fmt.Fprintf(s.out, "%s: %s%d Hz%s\n", mode, colorGreen, hz, colorReset)
	return nil
}

func parseTimerArgs(args []string) (core.PwmWorkingMode, uint8, uint16, error) {
	mode, err := parseMode(args[0])
	if err != nil {
		return 0, 0, 0, err
	}
	prescaler, err := parseUint(args[1], 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("prescaler: %w", err)
	}
	period, err := parseUint(args[2], 16)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("period: %w", err)
	}
	return mode, uint8(prescaler), uint16(period), nil
}

func parseMode(s string) (core.PwmWorkingMode, error) {
	switch strings.ToLower(s) {
	case "increase", "up", "1":
		return core.Increase, nil
	case "decrease", "down", "2":
		return core.Decrease, nil
	case "up-down", "updown", "3":
		return core.UpDown, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func parseUint(s string, bits int) (uint64, error) {
	return strconv.ParseUint(s, 0, bits)
}

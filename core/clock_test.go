package core

import "testing"

func TestDerivePwmClock(t *testing.T) {
	testCases := []struct {
		source    Hertz
		prescaler uint8
		expected  Hertz
	}{
		{160000000, 0, 160000000},
		{160000000, 1, 80000000},
		{160000000, 3, 40000000},
		{160000000, 255, 625000},
		{80000000, 2, 26666666}, // truncates
		{80000000, 6, 11428571}, // truncates
		{0, 10, 0},
	}

	for _, tc := range testCases {
		got := DerivePwmClock(tc.source, tc.prescaler).Frequency()
		if got != tc.expected {
			t.Errorf("DerivePwmClock(%d, %d) = %d, expected %d", tc.source, tc.prescaler, got, tc.expected)
		}
	}
}

func TestDerivePwmClockPrescalerSweep(t *testing.T) {
	sources := []Hertz{160000000, 80000000, 40000000, 1}
	for _, f := range sources {
		for p := 0; p <= 255; p++ {
			got := DerivePwmClock(f, uint8(p)).Frequency()
			if expected := f / Hertz(p+1); got != expected {
				t.Fatalf("source=%d prescaler=%d: got %d, expected %d", f, p, got, expected)
			}
		}
	}
}

func TestTimerFrequencyIncreaseDecrease(t *testing.T) {
	clk := DerivePwmClock(1000000, 0)

	for _, mode := range []PwmWorkingMode{Increase, Decrease} {
		// period+1 counts per cycle
		if got := clk.TimerFrequency(mode, 0, 999); got != 1000 {
			t.Errorf("%s: period=999 got %d, expected 1000", mode, got)
		}
		if got := clk.TimerFrequency(mode, 0, 0); got != 1000000 {
			t.Errorf("%s: period=0 got %d, expected 1000000", mode, got)
		}
		if got := clk.TimerFrequency(mode, 1, 999); got != 500 {
			t.Errorf("%s: prescaler=1 got %d, expected 500", mode, got)
		}
	}
}

func TestTimerFrequencyUpDown(t *testing.T) {
	clk := DerivePwmClock(1000000, 0)

	// period*2 counts per cycle, not (period+1)
	if got := clk.TimerFrequency(UpDown, 0, 500); got != 1000 {
		t.Errorf("period=500 got %d, expected 1000", got)
	}
	if got := clk.TimerFrequency(Increase, 0, 500); got == 1000 {
		t.Errorf("Increase mode must not use the up-down cycle length")
	}
	if got := clk.TimerFrequency(UpDown, 0, 1); got != 500000 {
		t.Errorf("period=1 got %d, expected 500000", got)
	}
	if got := clk.TimerFrequency(UpDown, 0, 0); got != 0 {
		t.Errorf("period=0 got %d, expected 0", got)
	}
}

func TestTimerFrequencyTruncation(t *testing.T) {
	clk := DerivePwmClock(160000000, 0)

	// 160e6 / 3 / 7 = 7619047.6..., each division truncates
	if got := clk.TimerFrequency(Increase, 2, 6); got != 7619047 {
		t.Errorf("got %d, expected 7619047", got)
	}
	// 160e6 / 1 / 6 = 26666666.6...
	if got := clk.TimerFrequency(UpDown, 0, 3); got != 26666666 {
		t.Errorf("got %d, expected 26666666", got)
	}
}

func TestTimerFrequencyExtremes(t *testing.T) {
	testCases := []struct {
		name      string
		source    Hertz
		mode      PwmWorkingMode
		prescaler uint8
		period    uint16
		expected  Hertz
	}{
		{"max clock increase", 0xFFFFFFFF, Increase, 0, 0, 0xFFFFFFFF},
		{"max clock up-down", 0xFFFFFFFF, UpDown, 0, 65535, 0xFFFFFFFF / 131070},
		{"slowest increase", 160000000, Increase, 255, 65535, 160000000 / 256 / 65536},
		{"slowest up-down", 160000000, UpDown, 255, 65535, 160000000 / 256 / 131070},
		{"below 1Hz", 1000, Decrease, 255, 65535, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DerivePwmClock(tc.source, 0).TimerFrequency(tc.mode, tc.prescaler, tc.period)
			if got != tc.expected {
				t.Errorf("got %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestPwmWorkingMode(t *testing.T) {
	testCases := []struct {
		mode  PwmWorkingMode
		name  string
		valid bool
	}{
		{0, "unknown", false},
		{Increase, "increase", true},
		{Decrease, "decrease", true},
		{UpDown, "up-down", true},
		{4, "unknown", false},
	}

	for _, tc := range testCases {
		if tc.mode.String() != tc.name {
			t.Errorf("mode %d: String() = %q, expected %q", tc.mode, tc.mode.String(), tc.name)
		}
		if tc.mode.Valid() != tc.valid {
			t.Errorf("mode %d: Valid() = %v, expected %v", tc.mode, tc.mode.Valid(), tc.valid)
		}
	}
}

func TestPwmSourceClock(t *testing.T) {
	clocks := &Clocks{CPUClock: 240000000, APBClock: 80000000, CryptoPWMClock: 160000000}
	got := PwmSourceClock(clocks)

	switch PwmClockSourceName {
	case "apb":
		if got != clocks.APBClock {
			t.Errorf("expected APB clock, got %d", got)
		}
	case "crypto_pwm":
		if got != clocks.CryptoPWMClock {
			t.Errorf("expected crypto/PWM clock, got %d", got)
		}
	default:
		t.Errorf("unexpected clock source %q", PwmClockSourceName)
	}
}

package core

import (
	"errors"
	"sync"

	"mcpwm/protocol"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoHandler      = errors.New("command has no handler")
)

// CommandHandler is a function that handles a command with raw frame data
// The handler is responsible for decoding its own arguments from the data pointer
type CommandHandler func(data *[]byte) error

// ResponseWriter receives an encoded response payload (message ID plus
// arguments). The payload is only valid for the duration of the call.
type ResponseWriter func(payload []byte) error

// Command is a registered message. Commands (host -> MCU) have a handler,
// responses (MCU -> host) do not.
type Command struct {
	ID      uint16
	Name    string
	Format  string // Format string for dictionary (e.g., "timer=%c freq=%u")
	Handler CommandHandler
}

// CommandRegistry holds all registered messages
type CommandRegistry struct {
	mu         sync.RWMutex
	commands   map[uint16]*Command
	nameToID   map[string]uint16
	nextID     uint16
	dictionary string
	respond    ResponseWriter
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[uint16]*Command),
		nameToID: make(map[string]uint16),
	}
}

// Register adds a command to the registry. IDs are assigned in registration
// order; registering a name again returns its existing ID.
func (r *CommandRegistry) Register(name string, format string, handler CommandHandler) uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, exists := r.nameToID[name]; exists {
		return id
	}

	id := r.nextID
	r.nextID++

	r.commands[id] = &Command{
		ID:      id,
		Name:    name,
		Format:  format,
		Handler: handler,
	}
	r.nameToID[name] = id

	if format != "" {
		r.dictionary += name + " " + format + "\n"
	} else {
		r.dictionary += name + "\n"
	}

	return id
}

// RegisterResponse registers a response message (MCU -> Host)
func (r *CommandRegistry) RegisterResponse(name string, format string) uint16 {
	return r.Register(name, format, nil)
}

// GetCommand retrieves a command by ID
func (r *CommandRegistry) GetCommand(id uint16) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// GetCommandByName retrieves a command by name
func (r *CommandRegistry) GetCommandByName(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.nameToID[name]
	if !ok {
		return nil, false
	}
	return r.commands[id], true
}

// Count returns the number of registered messages
func (r *CommandRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// GetDictionary returns one "name format" line per message in ID order
func (r *CommandRegistry) GetDictionary() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dictionary
}

// Dispatch calls the handler of command cmdID
func (r *CommandRegistry) Dispatch(cmdID uint16, data *[]byte) error {
	cmd, ok := r.GetCommand(cmdID)
	if !ok {
		DebugPrintln("[CMD] unknown command ID " + itoa(int(cmdID)))
		return ErrUnknownCommand
	}
	if cmd.Handler == nil {
		return ErrNoHandler
	}
	return cmd.Handler(data)
}

// SetResponder sets where SendResponse delivers encoded responses
func (r *CommandRegistry) SetResponder(w ResponseWriter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.respond = w
}

// SendResponse encodes response name with the arguments written by encode
// and passes it to the responder. Without a responder it is a no-op.
func (r *CommandRegistry) SendResponse(name string, encode func(output protocol.OutputBuffer)) error {
	r.mu.RLock()
	id, ok := r.nameToID[name]
	respond := r.respond
	r.mu.RUnlock()

	if !ok {
		return ErrUnknownCommand
	}
	if respond == nil {
		return nil
	}

	output := protocol.NewScratchOutput()
	protocol.EncodeVLQUint(output, uint32(id))
	if encode != nil {
		encode(output)
	}
	return respond(output.Result())
}

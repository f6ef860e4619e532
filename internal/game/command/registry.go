package command

import "fmt"

// Registry resolves input words to commands. Canonical names and aliases
// share one lookup table; a separate list keeps registration order for help
// output.
type Registry struct {
	words   map[string]*Command
	ordered []*Command
}

// NewRegistry indexes the given commands.
//
// Postcondition: every name and alias maps to exactly one command, or an
// error describes the first collision.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{words: make(map[string]*Command, 2*len(cmds))}
	for i := range cmds {
		cmd := &cmds[i]
		if taken, exists := r.words[cmd.Name]; exists {
			if taken.Name == cmd.Name {
				return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
			}
			return nil, fmt.Errorf("command name %q is already an alias of %q", cmd.Name, taken.Name)
		}
		r.words[cmd.Name] = cmd
		r.ordered = append(r.ordered, cmd)

		for _, alias := range cmd.Aliases {
			if taken, exists := r.words[alias]; exists {
				if taken.Name == alias {
					return nil, fmt.Errorf("alias %q shadows the %q command", alias, alias)
				}
				return nil, fmt.Errorf("duplicate alias %q: %q and %q both claim it", alias, taken.Name, cmd.Name)
			}
			r.words[alias] = cmd
		}
	}
	return r, nil
}

// DefaultRegistry returns the registry of built-in commands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by canonical name or alias.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Command, bool) {
	cmd, ok := r.words[input]
	return cmd, ok
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// CommandsByCategory groups the registered commands by category.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	out := make(map[string][]*Command)
	for _, cmd := range r.ordered {
		out[cmd.Category] = append(out[cmd.Category], cmd)
	}
	return out
}

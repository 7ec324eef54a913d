package command

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Command is a slash command available on chat channels.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}

type Router struct {
	commands map[string]Command
	fmt      *ResponseFormatter
}

func New(commands []Command) *Router {
	c := &Router{
		commands: make(map[string]Command),
		fmt:      NewResponseFormatter(),
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	return c
}

// Execute runs input if it is a slash command. The bool reports whether the
// input was handled here instead of by the conversation.
func (c *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	// Telegram appends the bot name in groups: /reset@intake_bot
	name, _, _ := strings.Cut(strings.TrimPrefix(parts[0], "/"), "@")
	args := parts[1:]

	if name == "help" {
		return c.help(), true
	}

	cmd, ok := c.commands[name]
	if !ok {
		return c.fmt.Combine(
			c.fmt.Error(fmt.Errorf("unknown command: /%s", name)),
			c.help(),
		), true
	}

	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		return c.fmt.Error(err), true
	}
	return result, true
}

// ListCommands returns the commands sorted by name.
func (c *Router) ListCommands() []Command {
	res := make([]Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

func (c *Router) help() string {
	items := make([]string, 0, len(c.commands)+1)
	for _, cmd := range c.ListCommands() {
		items = append(items, fmt.Sprintf("/%s  %s", cmd.Name(), cmd.Description()))
	}
	items = append(items, "/help  show this list")
	return c.fmt.Combine(c.fmt.Info("Commands"), c.fmt.List(items))
}

package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadCommand     = errors.New("malformed command")
)

type CommandKind string

const (
	CommandGet    CommandKind = "g"
	CommandOpen   CommandKind = "o"
	CommandFlag   CommandKind = "f"
	CommandReset  CommandKind = "n"
	CommandGiveUp CommandKind = "r"
)

// Maps known commands to number of arguments
var commandNargs = map[CommandKind]int{
	CommandGet:    0,
	CommandOpen:   2,
	CommandFlag:   2,
	CommandReset:  0,
	CommandGiveUp: 0,
}

type Command struct {
	Kind CommandKind
	Row  int
	Col  int
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: row must be an int", ErrBadCommand)
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: column must be an int", ErrBadCommand)
	}
	return row, col, nil
}

func ParseCommand(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, fmt.Errorf("%w: empty command", ErrBadCommand)
	}
	kind := CommandKind(parts[0])
	nargs, ok := commandNargs[kind]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf(
			"%w: %s takes %d arguments, got %d", ErrBadCommand, kind, nargs, len(parts)-1,
		)
	}
	cmd := Command{Kind: kind}
	if nargs == 2 {
		var err error
		if cmd.Row, cmd.Col, err = parseRowCol(parts[1:]); err != nil {
			return Command{}, err
		}
	}
	return cmd, nil
}

// Package handlers contains the command dispatcher and one handler per
// bot command. Handlers read and write the store and format bilingual
// Markdown responses; the dispatcher validates input shape and converts
// classified failures into user-facing messages.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Prefix marks a channel message as a bot command.
const Prefix = "!"

// HandlerFunc executes one command. args holds the whitespace-separated
// tokens after the command token. It returns the response text, or a
// classified error for the dispatcher to translate.
type HandlerFunc func(ctx context.Context, userID string, args []string) (string, error)

// command pairs a handler with its aliases and argument contract.
type command struct {
	aliases []string // without prefix; Korean and English forms
	minArgs int      // tokens required after the command token
	usage   string   // bilingual usage message shown when minArgs is unmet
	handler HandlerFunc
}

// Dispatcher routes raw channel messages to command handlers.
type Dispatcher struct {
	deps   HandlerDeps
	table  map[string]command
	logger *slog.Logger
}

// NewDispatcher builds a dispatcher with the full command table.
func NewDispatcher(deps HandlerDeps) *Dispatcher {
	d := &Dispatcher{
		deps:   deps,
		table:  make(map[string]command),
		logger: deps.Logger.With("component", "dispatcher"),
	}

	for _, cmd := range allCommands(deps) {
		for _, alias := range cmd.aliases {
			d.table[Prefix+strings.ToLower(alias)] = cmd
		}
	}
	return d
}

// Dispatch handles one raw message from userID. It returns the response
// to deliver as a direct message, or "" when the message is not a command
// and should be ignored. It never panics or returns an error; failures
// become bilingual messages.
func (d *Dispatcher) Dispatch(ctx context.Context, userID, message string) (response string) {
	message = strings.TrimSpace(message)
	if !strings.HasPrefix(message, Prefix) {
		return ""
	}

	// Malformed input must never take the loop down.
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "Handler panic recovered", "user_id", userID, "panic", r)
			response = msgInternalError(fmt.Errorf("%v", r))
		}
	}()

	tokens := strings.Fields(message)
	name := strings.ToLower(tokens[0])

	cmd, ok := d.table[name]
	if !ok {
		return msgUnknownCommand
	}

	args := tokens[1:]
	if len(args) < cmd.minArgs {
		return cmd.usage
	}

	result, err := cmd.handler(ctx, userID, args)
	if err != nil {
		return d.explain(ctx, userID, name, err)
	}
	return result
}

// explain maps a classified handler failure to its bilingual message.
func (d *Dispatcher) explain(ctx context.Context, userID, name string, err error) string {
	var ce *CommandError
	if errors.As(err, &ce) {
		switch ce.Kind {
		case KindUserInput, KindConflict:
			d.logger.DebugContext(ctx, "Command rejected", "command", name, "user_id", userID, "error", err)
			return ce.Message
		case KindInternal:
			// Fall through to the generic report below.
		}
	}

	d.logger.ErrorContext(ctx, "Command failed", "command", name, "user_id", userID, "error", err)
	return msgInternalError(err)
}

// allCommands returns the full command table. Each command carries a
// Korean and an English alias pointing at the same handler.
func allCommands(deps HandlerDeps) []command {
	return []command{
		{
			aliases: []string{"도움", "h", "help"},
			handler: newHelpHandler(deps),
		},
		{
			aliases: []string{"출근", "in"},
			handler: newCheckInHandler(deps),
		},
		{
			aliases: []string{"퇴근", "out"},
			handler: newCheckOutHandler(deps),
		},
		{
			aliases: []string{"출퇴근누락", "missing"},
			minArgs: 3,
			usage:   usageMissing,
			handler: newMissingHandler(deps),
		},
		{
			aliases: []string{"퇴근누락", "missingout"},
			minArgs: 2,
			usage:   usageMissingOut,
			handler: newMissingOutHandler(deps),
		},
		{
			aliases: []string{"최근기록", "recentrecord"},
			handler: newRecentRecordsHandler(deps),
		},
		{
			aliases: []string{"수정", "edit"},
			minArgs: 3,
			usage:   usageEdit,
			handler: newEditHandler(deps),
		},
		{
			aliases: []string{"삭제", "delete"},
			minArgs: 1,
			usage:   usageDelete,
			handler: newDeleteHandler(deps),
		},
		{
			aliases: []string{"휴가", "vacation"},
			minArgs: 3,
			usage:   usageVacation,
			handler: newVacationHandler(deps),
		},
		{
			aliases: []string{"상태", "teamstatus"},
			handler: newTeamStatusHandler(deps),
		},
		{
			aliases: []string{"월간보고", "monthlyreport"},
			handler: newMonthlyReportHandler(deps),
		},
		{
			aliases: []string{"멤버추가", "addmember"},
			minArgs: 6,
			usage:   usageAddMember,
			handler: newAddMemberHandler(deps),
		},
		{
			aliases: []string{"멤버업데이트", "updatemember"},
			minArgs: 2,
			usage:   usageUpdateMember,
			handler: newUpdateMemberHandler(deps),
		},
		{
			aliases: []string{"멤버삭제", "deletemember"},
			minArgs: 1,
			usage:   usageDeleteMember,
			handler: newDeleteMemberHandler(deps),
		},
		{
			aliases: []string{"멤버조회", "memberinfo"},
			minArgs: 1,
			usage:   usageMemberInfo,
			handler: newMemberInfoHandler(deps),
		},
		{
			aliases: []string{"fixdatabase"},
			handler: newFixDatabaseHandler(deps),
		},
	}
}

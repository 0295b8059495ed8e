package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwlab/attendbot/internal/database"
)

func newAddMemberHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, _ string, args []string) (string, error) {
		m := &database.MemberInfo{
			UserID:   args[0],
			Name:     args[1],
			Position: args[2],
			Phone:    args[3],
			Email:    args[4],
			Birthday: args[5],
		}
		if _, err := parseDate(m.Birthday); err != nil {
			return "", err
		}

		if err := deps.Store.InsertMember(ctx, m); err != nil {
			if errors.Is(err, database.ErrMemberExists) {
				return "", conflict(msgMemberExists(m.UserID))
			}
			return "", err
		}
		return fmt.Sprintf("Member added: %s", m.Name), nil
	}
}

func newUpdateMemberHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, _ string, args []string) (string, error) {
		userID := args[0]

		// Optional fields arrive positionally; only supplied ones are
		// written, each with its own statement.
		upd := database.MemberUpdate{}
		if len(args) > 1 {
			upd.Position = &args[1]
		}
		if len(args) > 2 {
			upd.Phone = &args[2]
		}
		if len(args) > 3 {
			upd.Email = &args[3]
		}
		if len(args) > 4 {
			if _, err := parseDate(args[4]); err != nil {
				return "", err
			}
			upd.Birthday = &args[4]
		}

		rows, err := deps.Store.UpdateMember(ctx, userID, upd)
		if err != nil {
			return "", err
		}
		if rows == 0 {
			return "", conflict(msgMemberMissing(userID))
		}
		return "Member info updated", nil
	}
}

func newDeleteMemberHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, _ string, args []string) (string, error) {
		userID := args[0]

		rows, err := deps.Store.DeleteMember(ctx, userID)
		if err != nil {
			return "", err
		}
		if rows == 0 {
			return "", conflict(msgMemberNotFound(userID))
		}
		return "Member deleted", nil
	}
}

func newMemberInfoHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, _ string, args []string) (string, error) {
		m, err := deps.Store.Member(ctx, args[0])
		if err != nil {
			return "", err
		}
		if m == nil {
			return "#### Member Info\n**Member not found**", nil
		}

		// Birthday shows month-day only; the birth year stays private.
		birthday := m.Birthday
		if len(birthday) >= 10 {
			birthday = birthday[5:]
		}

		return fmt.Sprintf("#### Member Info\n"+
			"- **Name**: %s\n"+
			"- **Position**: %s\n"+
			"- **Phone**: %s\n"+
			"- **Email**: %s\n"+
			"- **Birthday**: %s", m.Name, m.Position, m.Phone, m.Email, birthday), nil
	}
}

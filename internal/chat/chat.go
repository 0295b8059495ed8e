// Package chat defines the narrow gateway contract the bot consumes from
// the chat platform, and the wire types that cross it. The platform client
// behind the interface is an external collaborator; everything the bot
// needs from it is listed here.
package chat

import "context"

// Post is a single channel message.
type Post struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id"`
	Message   string `json:"message"`
	CreateAt  int64  `json:"create_at"` // milliseconds since epoch
	RootID    string `json:"root_id"`   // non-empty for thread replies
}

// Reply reports whether the post is a thread reply rather than a
// top-level channel message.
func (p Post) Reply() bool {
	return p.RootID != ""
}

// User is a chat platform account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsBot    bool   `json:"is_bot"`
	DeleteAt int64  `json:"delete_at"` // non-zero for deactivated accounts
}

// Active reports whether the account is a live, non-bot user.
func (u User) Active() bool {
	return !u.IsBot && u.DeleteAt == 0
}

// Channel is a chat channel with its owning team.
type Channel struct {
	ID     string `json:"id"`
	TeamID string `json:"team_id"`
}

// TeamMember associates a user with a team.
type TeamMember struct {
	UserID string `json:"user_id"`
}

// Gateway is the request/response surface the bot consumes from the chat
// platform. All calls are synchronous; no streaming.
type Gateway interface {
	// Me returns the account the gateway is authenticated as.
	Me(ctx context.Context) (User, error)

	// GetChannel looks up a channel by ID.
	GetChannel(ctx context.Context, channelID string) (Channel, error)

	// GetTeamMembers lists the members of a team.
	GetTeamMembers(ctx context.Context, teamID string) ([]TeamMember, error)

	// GetUser looks up a user by ID.
	GetUser(ctx context.Context, userID string) (User, error)

	// PostsSince returns the channel's posts with create_at greater than
	// since (milliseconds since epoch), in no particular order.
	PostsSince(ctx context.Context, channelID string, since int64) ([]Post, error)

	// CreateDirectChannel returns the direct-message channel between the
	// two users, creating it if needed.
	CreateDirectChannel(ctx context.Context, userID, otherID string) (Channel, error)

	// CreatePost posts a message to a channel.
	CreatePost(ctx context.Context, channelID, message string) error
}

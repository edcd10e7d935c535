package constants

// Context keys for validated requests
const (
	ContextKeyRequestID = "RequestID"
	ContextKeyIdentity  = "identity"

	// User context keys
	ContextKeyCreateProfile = "createProfile"
	ContextKeyUpdateProfile = "updateProfile"

	// Team context keys
	ContextKeyCreateTeam    = "createTeam"
	ContextKeyTeamMember    = "teamMember"
	ContextKeyCreateChannel = "createChannel"

	// Message context keys
	ContextKeyChannelMessage = "channelMessage"
	ContextKeyPrivateMessage = "privateMessage"
)

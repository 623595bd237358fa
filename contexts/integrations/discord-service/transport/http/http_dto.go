package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GuildConnectionDTO struct {
	BrandID     string `json:"brand_id"`
	GuildID     string `json:"guild_id"`
	GuildName   string `json:"guild_name"`
	ConnectedAt string `json:"connected_at"`
}

type CompleteOAuthRequest struct {
	MessageType string `json:"message_type"`
	GuildID     string `json:"guild_id"`
	GuildName   string `json:"guild_name"`
}

type ConnectionResponse struct {
	Connection GuildConnectionDTO `json:"connection"`
}

type GuildRoleDTO struct {
	RoleID   string `json:"role_id"`
	Name     string `json:"name"`
	Color    int    `json:"color"`
	Position int    `json:"position"`
}

type ListGuildRolesResponse struct {
	Items []GuildRoleDTO `json:"items"`
}

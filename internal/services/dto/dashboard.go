package dto

type DashboardStats struct {
	Applications   int64 `json:"applications"`
	Technologies   int64 `json:"technologies"`
	Messages       int64 `json:"messages"`
	UnreadMessages int64 `json:"unreadMessages"`
}

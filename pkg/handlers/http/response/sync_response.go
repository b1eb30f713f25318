package response

type SyncResponse struct {
	Status          string `json:"status"`
	DocumentsSynced int    `json:"documents_synced"`
}

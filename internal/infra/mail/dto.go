package mail

type SyncReportData struct {
	Synced     int
	Skipped    int
	FinishedAt string
}

package downloader

// YTDLPInfo mirrors fields from yt-dlp -J output that we care about.
type YTDLPInfo struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Uploader  string  `json:"uploader"`
	Channel   string  `json:"channel"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
	ViewCount int64   `json:"view_count"`
	Ext       string  `json:"ext"`
}

package types

// StatsSummary 当前用户文件总体统计.
type StatsSummary struct {
	TotalFiles   int64 `json:"total_files"`
	TotalFolders int64 `json:"total_folders"`
	TotalSize    int64 `json:"total_size"`
	UnfiledFiles int64 `json:"unfiled_files"` // folder 为空的文件数量
	StorageUsed  int64 `json:"storage_used"`
	StorageQuota int64 `json:"storage_quota"`
}

// StatsTypeItem 按文件类型聚合.
type StatsTypeItem struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
	Size  int64  `json:"size"`
}

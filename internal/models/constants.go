package models

const (
	// DefaultRequestPageSize is the page size for browsing others' item requests.
	DefaultRequestPageSize = 10

	// ExportQueueSize is the buffer of pending export tasks.
	ExportQueueSize = 16

	// SearchCacheTTL время жизни кэша результатов поиска в секундах
	SearchCacheTTL = 10 * 60
)

package renderer

// ConnectionState is the last known reachability of the catalog service.
type ConnectionState string

const (
	StateUnknown   ConnectionState = "unknown"
	StateConnected ConnectionState = "connected"
	StateError     ConnectionState = "error"
)

type ConnectionStatus struct {
	State ConnectionState `json:"state"`
	Label string          `json:"label"`
}

type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient, auto-dismissing message.
type Notice struct {
	Message string     `json:"message"`
	Kind    NoticeKind `json:"kind"`
}

// InfoField is one labelled cell of the server info panel.
type InfoField struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Error bool   `json:"error,omitempty"`
}

// ItemCard is one card of the items panel.
type ItemCard struct {
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Error       bool   `json:"error,omitempty"`
}

// Surface is where the controller presents state. The status indicator, the
// info panel, the items panel and the notice area are disjoint regions, and
// each may be updated from a different goroutine.
type Surface interface {
	SetStatus(status ConnectionStatus)
	RenderInfo(fields []InfoField)
	RenderItems(cards []ItemCard)
	ShowNotice(n Notice)
	ClearNotice()
}

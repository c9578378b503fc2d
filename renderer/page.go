package renderer

import (
	"embed"
	"html/template"
	"io"
	"sync"
)

//go:embed templates/page.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html"))

// View is a point-in-time copy of everything on the page.
type View struct {
	Status ConnectionStatus `json:"status"`
	Info   []InfoField      `json:"info"`
	Items  []ItemCard       `json:"items"`
	Notice *Notice          `json:"notice,omitempty"`
}

// Page is an in-memory Surface that renders itself as HTML.
type Page struct {
	mu   sync.RWMutex
	view View
}

func NewPage() *Page {
	return &Page{
		view: View{
			Status: ConnectionStatus{State: StateUnknown, Label: "Connecting..."},
		},
	}
}

func (p *Page) SetStatus(status ConnectionStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.Status = status
}

func (p *Page) RenderInfo(fields []InfoField) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.Info = append([]InfoField(nil), fields...)
}

func (p *Page) RenderItems(cards []ItemCard) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.Items = append([]ItemCard(nil), cards...)
}

func (p *Page) ShowNotice(n Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.Notice = &n
}

func (p *Page) ClearNotice() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.Notice = nil
}

func (p *Page) Snapshot() View {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v := View{
		Status: p.view.Status,
		Info:   append([]InfoField(nil), p.view.Info...),
		Items:  append([]ItemCard(nil), p.view.Items...),
	}
	if p.view.Notice != nil {
		n := *p.view.Notice
		v.Notice = &n
	}
	return v
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return pageTemplate.Execute(w, p.Snapshot())
}

package renderer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRender(t *testing.T) {
	page := NewPage()
	page.SetStatus(ConnectionStatus{State: StateConnected, Label: "Connected"})
	page.RenderInfo([]InfoField{{Label: "Service", Value: "k8s-demo-backend"}})
	page.RenderItems([]ItemCard{{Icon: "🐳", Name: "<Docker>", Description: "Containerization technology"}})
	page.ShowNotice(Notice{Message: "Data refreshed!", Kind: NoticeSuccess})

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))
	html := buf.String()

	assert.Contains(t, html, `class="status-badge connected"`)
	assert.Contains(t, html, "k8s-demo-backend")
	assert.Contains(t, html, "&lt;Docker&gt;")
	assert.NotContains(t, html, "<Docker>")
	assert.Contains(t, html, `class="toast show success"`)
	assert.Contains(t, html, `action="/refresh"`)
	assert.Contains(t, html, `action="/health-check"`)
}

func TestPageSnapshotIsCopy(t *testing.T) {
	page := NewPage()
	page.RenderItems([]ItemCard{{Name: "a"}})
	page.ShowNotice(Notice{Message: "n"})

	view := page.Snapshot()
	view.Items[0].Name = "mutated"
	view.Notice.Message = "mutated"

	again := page.Snapshot()
	assert.Equal(t, "a", again.Items[0].Name)
	assert.Equal(t, "n", again.Notice.Message)
}

func TestPageInitialState(t *testing.T) {
	view := NewPage().Snapshot()

	assert.Equal(t, StateUnknown, view.Status.State)
	assert.Empty(t, view.Items)
	assert.Nil(t, view.Notice)
}

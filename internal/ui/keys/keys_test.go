package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"add", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, km.Add},
		{"complete", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, km.Complete},
		{"suspend", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}, km.Suspend},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, km.Delete},
		{"save", tea.KeyMsg{Type: tea.KeyCtrlS}, km.Save},
		{"quit", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{"submit", tea.KeyMsg{Type: tea.KeyEnter}, km.Submit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()
	assert.NotEmpty(t, km.ShortHelp())
	for _, column := range km.FullHelp() {
		assert.NotEmpty(t, column)
	}
}

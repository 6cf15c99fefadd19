package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sante-rag/internal/domain"
)

// AnswerPort is the TUI-facing subset of the answer service.
type AnswerPort interface {
	Answer(query string) (domain.AnswerResult, error)
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service     AnswerPort
	input       textinput.Model
	viewport    viewport.Model
	turns       []domain.AnswerResult
	brochures   []string
	status      string
	showSources bool
	ready       bool
}

// New creates a new chat model over the answer service. brochures is the
// list of indexed files shown in the header.
func New(service AnswerPort, brochures []string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Votre question..."
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:     service,
		input:       ti,
		viewport:    vp,
		brochures:   brochures,
		showSources: true,
		status:      "Index chargé. Posez une question de santé (en français).",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + brochure list
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				result, err := m.service.Answer(q)
				if err != nil {
					m.status = "Erreur : " + err.Error()
				} else {
					m.turns = append(m.turns, result)
					m.status = fmt.Sprintf("%d source(s) pour %q", len(result.Sources), q)
					m.input.SetValue("")
				}
				m.viewport.SetContent(m.renderTranscript())
				m.viewport.GotoBottom()
				return m, nil
			}
		case "tab":
			m.showSources = !m.showSources
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Chargement..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Chatbot d'information santé (RAG extractif)")
	brochures := brochureStyle.Render("Brochures : " + strings.Join(m.brochures, ", "))
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status + "  (tab : sources, ctrl+c : quitter)")
	return header + "\n" + brochures + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.turns) == 0 {
		return "Aucune question posée pour l'instant."
	}
	var b strings.Builder
	for i, turn := range m.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("Vous : " + turn.Question))
		b.WriteString("\n\n")
		b.WriteString(turn.Answer)
		if m.showSources {
			b.WriteString("\n\n")
			b.WriteString(m.renderSources(turn.Sources))
		}
	}
	return b.String()
}

func (m Model) renderSources(sources []domain.Source) string {
	if len(sources) == 0 {
		return sourceHeadStyle.Render("Aucune source trouvée.")
	}
	var b strings.Builder
	for i, src := range sources {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sourceHeadStyle.Render(fmt.Sprintf("Source %d : %s", i+1, src.Filename)))
		b.WriteString(fmt.Sprintf("\n  Score : %.3f  Chunk : %d\n", src.Score, src.ChunkIndex))
		if src.Snippet != "" {
			b.WriteString("  " + src.Snippet + "\n")
		}
	}
	return b.String()
}

var (
	chatBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sourceHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	brochureStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// ABOUTME: Human-readable dump of a parsed WAV header
// ABOUTME: Read-only formatting over File, styled with lipgloss
package wav

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type dumpStyles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	section lipgloss.Style
	field   lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
}

func newDumpStyles(r *lipgloss.Renderer) dumpStyles {
	return dumpStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		label:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		field:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		good:    r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// Describe returns the header dump without color
func Describe(f *File) string {
	return describe(newDumpStyles(lipgloss.NewRenderer(io.Discard)), f)
}

// Fprint writes the header dump to w, colored when w is a terminal
func Fprint(w io.Writer, f *File) error {
	_, err := io.WriteString(w, describe(newDumpStyles(lipgloss.NewRenderer(w)), f))
	return err
}

func describe(st dumpStyles, f *File) string {
	h := f.Header
	var b strings.Builder

	line := func(style lipgloss.Style, indent, label, format string, args ...any) {
		b.WriteString(indent)
		b.WriteString(style.Render(label + ":"))
		b.WriteString(" ")
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\n")
	}

	b.WriteString(st.title.Render("----- WAV Header Info -----"))
	b.WriteString("\n")
	line(st.label, "", "ChunkID", "RIFF")
	line(st.label, "", "File Size (minus 8 bytes)", "%d bytes", h.RIFFSize)
	line(st.label, "", "Format", "WAVE")

	b.WriteString("\n")
	b.WriteString(st.section.Render("Format Subchunk:"))
	b.WriteString("\n")
	line(st.field, "  ", "Subchunk1ID", "fmt ")
	line(st.field, "  ", "Subchunk1 Size", "%d bytes", h.FmtSize)
	line(st.field, "  ", "Audio Format", "%d %s", h.FormatTag, st.good.Render("(PCM)"))

	layout := st.good
	if f.Format.Channels > 2 {
		layout = st.warn
	}
	line(st.field, "  ", "Number of Channels", "%d %s", h.Channels, layout.Render("("+f.Format.ChannelLayout()+")"))
	line(st.field, "  ", "Sample Rate", "%d Hz", h.SampleRate)
	line(st.field, "  ", "Byte Rate", "%d bytes/sec", h.ByteRate)
	line(st.field, "  ", "Block Align", "%d bytes/frame", h.BlockAlign)
	line(st.field, "  ", "Bits per Sample", "%d bits", h.BitsPerSample)

	if len(f.Skipped) > 0 {
		line(st.field, "  ", "Skipped Chunks", "%s", strings.Join(f.Skipped, ", "))
	}

	b.WriteString("\n")
	b.WriteString(st.section.Render("Data Subchunk:"))
	b.WriteString("\n")
	line(st.field, "  ", "Data Header", "data")
	line(st.field, "  ", "Data Size", "%d bytes", h.DataSize)
	line(st.field, "  ", "Frames", "%d", f.Frames)

	if h.ByteRate > 0 {
		b.WriteString("\n")
		line(st.label, "", "Approximate Duration", "%.2f seconds", float64(h.DataSize)/float64(h.ByteRate))
	}

	b.WriteString(st.title.Render("---------------------------"))
	b.WriteString("\n")

	return b.String()
}

package commit

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"grit/internal/object"
	"grit/internal/store"
)

// Identity names a commit's author/committer.
type Identity struct {
	Name  string
	Email string
}

func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// Commit holds the metadata rendered into a commit object. Multiple
// parents are representable (merge commits), the CLI only ever sets
// zero or one.
type Commit struct {
	Tree    string
	Parents []string
	Message string
	Author  Identity
	When    time.Time
}

// Render produces the commit object's textual payload: a header block
// of key-value lines, a blank line, then the message. Author and
// committer carry the same identity and timestamp.
func (c *Commit) Render() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "tree %s\n", c.Tree)
	for _, parent := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", parent)
	}

	stamp := fmt.Sprintf("%d %s", c.When.Unix(), formatOffset(c.When))
	fmt.Fprintf(&buf, "author %s %s\n", c.Author, stamp)
	fmt.Fprintf(&buf, "committer %s %s\n", c.Author, stamp)

	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	if !strings.HasSuffix(c.Message, "\n") {
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// Write persists the rendered commit through the object store and
// returns its id.
func (c *Commit) Write(s *store.Store) (string, error) {
	payload := c.Render()
	id, err := s.Write(object.KindCommit, int64(len(payload)), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to store commit: %w", err)
	}
	return id, nil
}

// formatOffset renders a timestamp's zone as a signed ±HHMM offset.
func formatOffset(t time.Time) string {
	_, offset := t.Zone()
	hours := offset / 3600
	minutes := (offset % 3600) / 60
	if minutes < 0 {
		minutes = -minutes
	}
	return fmt.Sprintf("%+03d%02d", hours, minutes)
}

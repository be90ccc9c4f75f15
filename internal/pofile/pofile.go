// Package pofile renders translation catalogs to the gettext on-disk
// formats: .po message files and compiled .mo binaries, laid out under a
// locale directory tree.
package pofile

import (
	"fmt"
	"strings"
)

// File is an in-memory gettext catalog ready for serialization.
type File struct {
	metadata  []metaField
	entries   []Entry
	seenMsgID map[string]bool
}

// Entry is one msgid/msgstr pair.
type Entry struct {
	MsgID  string
	MsgStr string
}

type metaField struct {
	key   string
	value string
}

// New creates a catalog file with the standard header for a domain and
// language.
func New(domain, languageCode string) *File {
	return &File{
		metadata: []metaField{
			{"Project-Id-Version", domain},
			{"Language", languageCode},
			{"MIME-Version", "1.0"},
			{"Content-Type", "text/plain; charset=utf-8"},
			{"Content-Transfer-Encoding", "8bit"},
		},
		seenMsgID: map[string]bool{"": true},
	}
}

// Append adds an entry. A msgid already present is skipped: gettext catalogs
// key messages uniquely, and two fields can legitimately share one
// authoritative text.
func (f *File) Append(msgid, msgstr string) {
	if f.seenMsgID[msgid] {
		return
	}
	f.seenMsgID[msgid] = true
	f.entries = append(f.entries, Entry{MsgID: msgid, MsgStr: msgstr})
}

// Len returns the number of entries, header excluded.
func (f *File) Len() int { return len(f.entries) }

// Entries returns the appended entries in order.
func (f *File) Entries() []Entry {
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

func (f *File) headerValue() string {
	var sb strings.Builder
	for _, m := range f.metadata {
		fmt.Fprintf(&sb, "%s: %s\n", m.key, m.value)
	}
	return sb.String()
}

// Render produces the textual .po representation.
func (f *File) Render() string {
	var sb strings.Builder
	sb.WriteString("msgid \"\"\nmsgstr \"\"\n")
	for _, m := range f.metadata {
		fmt.Fprintf(&sb, "\"%s: %s\\n\"\n", m.key, m.value)
	}
	for _, e := range f.entries {
		fmt.Fprintf(&sb, "\nmsgid \"%s\"\nmsgstr \"%s\"\n", escape(e.MsgID), escape(e.MsgStr))
	}
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
		"\t", "\\t",
		"\r", "\\r",
	)
	return r.Replace(s)
}

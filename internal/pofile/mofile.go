package pofile

import (
	"bytes"
	"encoding/binary"
	"sort"
)

// moMagic is the little-endian magic number of the GNU .mo format.
const moMagic = 0x950412de

// CompileMO produces the compiled binary catalog. The header entry (empty
// msgid carrying the metadata) is included, and originals are byte-sorted as
// the format requires.
func (f *File) CompileMO() []byte {
	entries := make([]Entry, 0, len(f.entries)+1)
	entries = append(entries, Entry{MsgID: "", MsgStr: f.headerValue()})
	entries = append(entries, f.entries...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].MsgID < entries[j].MsgID })

	n := uint32(len(entries))
	const headerSize = 28
	origTableOff := uint32(headerSize)
	transTableOff := origTableOff + 8*n
	dataOff := transTableOff + 8*n

	var data bytes.Buffer
	type lenOff struct{ length, offset uint32 }
	origs := make([]lenOff, n)
	trans := make([]lenOff, n)

	for i, e := range entries {
		origs[i] = lenOff{uint32(len(e.MsgID)), dataOff + uint32(data.Len())}
		data.WriteString(e.MsgID)
		data.WriteByte(0)
	}
	for i, e := range entries {
		trans[i] = lenOff{uint32(len(e.MsgStr)), dataOff + uint32(data.Len())}
		data.WriteString(e.MsgStr)
		data.WriteByte(0)
	}

	var out bytes.Buffer
	write := func(v uint32) { _ = binary.Write(&out, binary.LittleEndian, v) }
	write(moMagic)
	write(0) // format revision
	write(n)
	write(origTableOff)
	write(transTableOff)
	write(0)       // hash table size (none)
	write(dataOff) // hash table offset
	for _, lo := range origs {
		write(lo.length)
		write(lo.offset)
	}
	for _, lo := range trans {
		write(lo.length)
		write(lo.offset)
	}
	out.Write(data.Bytes())
	return out.Bytes()
}

package protocol

import (
	"fmt"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/journal"
)

// Field mask bits of an encoded record.
const (
	hasParent  = 1 << 0
	hasNode    = 1 << 1
	hasBefore  = 1 << 2
	hasText    = 1 << 3
	hasCleanup = 1 << 4
)

var opsByName = func() map[string]journal.Op {
	m := make(map[string]journal.Op, len(journal.Ops))
	for _, op := range journal.Ops {
		m[op.String()] = op
	}
	return m
}()

// Patch is one rendered pass as sent to a binary client.
type Patch struct {
	Seq     uint64
	Records []journal.Record
}

// EncodePatch returns a patch frame. Records with an unknown op fail with
// E301.
func EncodePatch(p Patch) ([]byte, error) {
	e := NewEncoder()
	e.WriteUvarint(p.Seq)
	e.WriteUvarint(uint64(len(p.Records)))
	for i := range p.Records {
		if err := encodeRecord(e, &p.Records[i]); err != nil {
			return nil, err
		}
	}
	f := Frame{Type: FramePatch, Payload: e.Bytes()}
	return f.Encode(), nil
}

func encodeRecord(e *Encoder, r *journal.Record) error {
	op, ok := opsByName[r.Op]
	if !ok {
		return errors.New("E301").WithDetailf("op %q", r.Op)
	}
	e.WriteByte(byte(op))

	var mask byte
	if r.Parent != "" {
		mask |= hasParent
	}
	if r.Node != "" {
		mask |= hasNode
	}
	if r.Before != "" {
		mask |= hasBefore
	}
	if op == journal.OpSetText {
		mask |= hasText
	}
	if r.Cleanup {
		mask |= hasCleanup
	}
	e.WriteByte(mask)

	if mask&hasParent != 0 {
		e.WriteString(r.Parent)
	}
	if mask&hasNode != 0 {
		e.WriteString(r.Node)
	}
	if mask&hasBefore != 0 {
		e.WriteString(r.Before)
	}
	if mask&hasText != 0 {
		e.WriteString(r.Text)
	}

	e.WriteUvarint(uint64(len(r.Attrs)))
	for _, a := range r.Attrs {
		e.WriteString(a.Key)
		e.WriteBool(a.Removed)
		if !a.Removed {
			e.WriteString(a.Value)
		}
	}
	return nil
}

// DecodePatch reads the payload of a patch frame.
func DecodePatch(payload []byte) (Patch, error) {
	d := NewDecoder(payload)
	seq, err := d.ReadUvarint()
	if err != nil {
		return Patch{}, malformed(err)
	}
	n, err := d.ReadCount()
	if err != nil {
		return Patch{}, malformed(err)
	}

	p := Patch{Seq: seq, Records: make([]journal.Record, 0, n)}
	for range n {
		r, err := decodeRecord(d)
		if err != nil {
			return Patch{}, err
		}
		p.Records = append(p.Records, r)
	}
	if !d.EOF() {
		return Patch{}, malformed(fmt.Errorf("%d trailing bytes", d.Remaining()))
	}
	return p, nil
}

func decodeRecord(d *Decoder) (journal.Record, error) {
	var r journal.Record

	b, err := d.ReadByte()
	if err != nil {
		return r, malformed(err)
	}
	op := journal.Op(b)
	if _, ok := opsByName[op.String()]; !ok {
		return r, errors.New("E301").WithDetailf("opcode 0x%02x", b)
	}
	r.Op = op.String()

	mask, err := d.ReadByte()
	if err != nil {
		return r, malformed(err)
	}
	r.Cleanup = mask&hasCleanup != 0

	fields := []struct {
		bit byte
		dst *string
	}{
		{hasParent, &r.Parent},
		{hasNode, &r.Node},
		{hasBefore, &r.Before},
		{hasText, &r.Text},
	}
	for _, f := range fields {
		if mask&f.bit == 0 {
			continue
		}
		if *f.dst, err = d.ReadString(); err != nil {
			return r, malformed(err)
		}
	}

	n, err := d.ReadCount()
	if err != nil {
		return r, malformed(err)
	}
	for range n {
		var a journal.AttrRecord
		if a.Key, err = d.ReadString(); err != nil {
			return r, malformed(err)
		}
		if a.Removed, err = d.ReadBool(); err != nil {
			return r, malformed(err)
		}
		if !a.Removed {
			if a.Value, err = d.ReadString(); err != nil {
				return r, malformed(err)
			}
		}
		r.Attrs = append(r.Attrs, a)
	}
	return r, nil
}

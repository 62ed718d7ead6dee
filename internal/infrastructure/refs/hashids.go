// Package refs generates short human-readable references such as BK-3KD9QZ.
package refs

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/speps/go-hashids/v2"
)

// alphabet leaves out characters that are easy to misread (0/O, 1/I).
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// epoch keeps the encoded millisecond count small.
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Generator implements ports.ReferenceGenerator.
type Generator struct {
	h   *hashids.HashID
	seq atomic.Int64
	now func() time.Time
}

func NewGenerator(salt string) (*Generator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.Alphabet = alphabet
	hd.MinLength = 6

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("hashids: %w", err)
	}
	return &Generator{h: h, now: time.Now}, nil
}

// Generate returns prefix-CODE. Codes are unique within a process; the
// per-millisecond sequence keeps bursts apart.
func (g *Generator) Generate(prefix string) string {
	ms := g.now().Sub(epoch).Milliseconds()
	seq := g.seq.Add(1) % 1000

	code, err := g.h.EncodeInt64([]int64{ms, seq})
	if err != nil {
		code = fmt.Sprintf("%X%03d", ms, seq)
	}
	return prefix + "-" + code
}

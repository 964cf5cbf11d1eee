package gameloop

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrUnknownType is returned by Load when a sprite kind tag is not one
	// of the known kinds.
	ErrUnknownType = errors.New("gameloop: unknown sprite type")
	// ErrCorrupt is returned by Load for a bad header or out-of-range
	// length or count.
	ErrCorrupt = errors.New("gameloop: corrupt save data")
)

const (
	saveMagic   = "GLSV"
	saveVersion = uint16(1)

	maxSaveString   = 4096
	maxSaveChildren = 1 << 16
	maxSaveDepth    = 256
	maxSaveNodes    = 1 << 20
)

var byteOrder = binary.LittleEndian

// spriteRecord is the fixed-size part of a sprite, written in declaration
// order.
type spriteRecord struct {
	PosX, PosY   float64
	SizeX, SizeY float64
	Rotation     float64
	VelX, VelY   float64
	Shape        uint8
	Collidable   uint8
}

// --- Encoding ---

// saveWriter carries the first write error so call sites stay linear.
type saveWriter struct {
	w   *bufio.Writer
	err error
}

func (e *saveWriter) put(v any) {
	if e.err != nil {
		return
	}
	e.err = binary.Write(e.w, byteOrder, v)
}

func (e *saveWriter) putString(str string) {
	if e.err == nil && len(str) > maxSaveString {
		e.err = fmt.Errorf("gameloop: string of %d bytes exceeds %d: %w", len(str), maxSaveString, ErrCorrupt)
	}
	e.put(uint32(len(str)))
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(str)
}

// Save writes every attached node, roots first, each followed by its
// subtree. Detached nodes are not written.
func (s *Scene) Save(w io.Writer) error {
	e := &saveWriter{w: bufio.NewWriter(w)}
	e.put([]byte(saveMagic))
	e.put(saveVersion)
	e.put(uint32(len(s.arena.roots)))
	for _, r := range s.arena.roots {
		s.encodeNode(e, r)
	}
	if e.err != nil {
		return fmt.Errorf("gameloop: save: %w", e.err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("gameloop: save: %w", err)
	}
	return nil
}

func (s *Scene) encodeNode(e *saveWriter, id NodeID) {
	n := &s.arena.nodes[id.index]
	e.putString(n.name)
	if n.sprite == nil {
		e.put(uint8(0))
	} else {
		e.put(uint8(1))
		encodeSprite(e, n.sprite)
	}
	e.put(uint32(len(n.children)))
	for _, c := range n.children {
		s.encodeNode(e, c)
	}
}

func encodeSprite(e *saveWriter, sp *Sprite) {
	e.put(uint8(sp.Kind))
	rec := spriteRecord{
		PosX: sp.Position.X, PosY: sp.Position.Y,
		SizeX: sp.Size.X, SizeY: sp.Size.Y,
		Rotation: sp.Rotation,
		VelX:     sp.Velocity.X, VelY: sp.Velocity.Y,
		Shape: uint8(sp.Shape),
	}
	if sp.Collidable {
		rec.Collidable = 1
	}
	e.put(&rec)

	switch sp.Kind {
	case KindPlayer:
		e.putString(sp.Texture)
		e.putString(sp.Sound)
		e.put(sp.Acceleration)
		e.put(sp.RotationOffset)
	case KindWall:
		e.putString(sp.Texture)
		e.putString(sp.Sound)
	case KindPlatform:
		e.put(sp.Patrol.X)
		e.put(sp.Patrol.Y)
		e.putString(sp.Texture)
		e.putString(sp.Sound)
	case KindBackground:
		e.putString(sp.Texture)
		e.put(sp.ScrollSpeed)
	default:
		if e.err == nil {
			e.err = fmt.Errorf("kind %d: %w", sp.Kind, ErrUnknownType)
		}
	}
}

// --- Decoding ---

type saveReader struct {
	r     *bufio.Reader
	err   error
	nodes int
}

func (d *saveReader) get(v any) {
	if d.err != nil {
		return
	}
	if err := binary.Read(d.r, byteOrder, v); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		d.err = err
	}
}

func (d *saveReader) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *saveReader) getString() string {
	var n uint32
	d.get(&n)
	if d.err != nil {
		return ""
	}
	if n > maxSaveString {
		d.fail(fmt.Errorf("string length %d: %w", n, ErrCorrupt))
		return ""
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		d.fail(err)
		return ""
	}
	return string(buf)
}

// Load replaces the scene's nodes with the ones read from r. The data is
// decoded into a fresh arena first, so on any error (unknown sprite type,
// corrupt header, truncated input) the scene is left exactly as it was.
//
// Handles from before a successful Load are stale afterwards.
func (s *Scene) Load(r io.Reader) error {
	fresh, err := decodeArena(r, s.arena.maxGen())
	if err != nil {
		return fmt.Errorf("gameloop: load: %w", err)
	}
	s.arena = *fresh
	s.index.Clear()
	s.tweens = s.tweens[:0]
	s.logger.Debug("scene loaded", "roots", len(fresh.roots), "nodes", fresh.live)
	return nil
}

func decodeArena(r io.Reader, genFloor uint32) (*arena, error) {
	d := &saveReader{r: bufio.NewReader(r)}

	magic := make([]byte, len(saveMagic))
	d.get(magic)
	var version uint16
	d.get(&version)
	if d.err != nil {
		return nil, d.err
	}
	if string(magic) != saveMagic {
		return nil, fmt.Errorf("bad magic %q: %w", magic, ErrCorrupt)
	}
	if version != saveVersion {
		return nil, fmt.Errorf("unsupported version %d: %w", version, ErrCorrupt)
	}

	var rootCount uint32
	d.get(&rootCount)
	if d.err == nil && rootCount > maxSaveChildren {
		d.fail(fmt.Errorf("root count %d: %w", rootCount, ErrCorrupt))
	}

	a := &arena{floor: genFloor}
	for i := uint32(0); i < rootCount && d.err == nil; i++ {
		id := decodeNode(d, a, NodeID{}, 0)
		if d.err != nil {
			break
		}
		a.nodes[id.index].root = true
		a.roots = append(a.roots, id)
	}
	if d.err != nil {
		return nil, d.err
	}
	return a, nil
}

func decodeNode(d *saveReader, a *arena, parent NodeID, depth int) NodeID {
	if depth > maxSaveDepth {
		d.fail(fmt.Errorf("tree deeper than %d: %w", maxSaveDepth, ErrCorrupt))
		return NodeID{}
	}
	d.nodes++
	if d.nodes > maxSaveNodes {
		d.fail(fmt.Errorf("more than %d nodes: %w", maxSaveNodes, ErrCorrupt))
		return NodeID{}
	}

	name := d.getString()
	var hasSprite uint8
	d.get(&hasSprite)
	var sp *Sprite
	if d.err == nil && hasSprite != 0 {
		sp = decodeSprite(d)
	}
	var childCount uint32
	d.get(&childCount)
	if d.err != nil {
		return NodeID{}
	}
	if childCount > maxSaveChildren {
		d.fail(fmt.Errorf("child count %d: %w", childCount, ErrCorrupt))
		return NodeID{}
	}

	id := a.alloc(sp, name)
	a.nodes[id.index].parent = parent
	for i := uint32(0); i < childCount; i++ {
		c := decodeNode(d, a, id, depth+1)
		if d.err != nil {
			return NodeID{}
		}
		n := &a.nodes[id.index]
		n.children = append(n.children, c)
	}
	return id
}

func decodeSprite(d *saveReader) *Sprite {
	var kind uint8
	d.get(&kind)
	if d.err != nil {
		return nil
	}
	if !Kind(kind).valid() {
		d.fail(fmt.Errorf("kind tag %d: %w", kind, ErrUnknownType))
		return nil
	}

	var rec spriteRecord
	d.get(&rec)
	if d.err == nil && Shape(rec.Shape) > ShapeRect {
		d.fail(fmt.Errorf("shape tag %d: %w", rec.Shape, ErrCorrupt))
	}

	sp := &Sprite{
		Kind:       Kind(kind),
		Position:   Vec2{rec.PosX, rec.PosY},
		Size:       Vec2{rec.SizeX, rec.SizeY},
		Rotation:   rec.Rotation,
		Velocity:   Vec2{rec.VelX, rec.VelY},
		Shape:      Shape(rec.Shape),
		Collidable: rec.Collidable != 0,
	}
	spriteDefaults(sp)

	switch sp.Kind {
	case KindPlayer:
		sp.Texture = d.getString()
		sp.Sound = d.getString()
		d.get(&sp.Acceleration)
		d.get(&sp.RotationOffset)
	case KindWall:
		sp.Texture = d.getString()
		sp.Sound = d.getString()
	case KindPlatform:
		d.get(&sp.Patrol.X)
		d.get(&sp.Patrol.Y)
		sp.Texture = d.getString()
		sp.Sound = d.getString()
	case KindBackground:
		sp.Texture = d.getString()
		d.get(&sp.ScrollSpeed)
	}
	if d.err != nil {
		return nil
	}
	return sp
}

// maxGen returns the highest generation handed out by a.
func (a *arena) maxGen() uint32 {
	g := a.floor
	for i := range a.nodes {
		g = max(g, a.nodes[i].gen)
	}
	return g
}

// --- Files ---

// SaveFile writes the scene to path, replacing it atomically.
func (s *Scene) SaveFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("gameloop: save %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := s.Save(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("gameloop: save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("gameloop: save %s: %w", path, err)
	}
	s.logger.Info("scene saved", "path", path)
	return nil
}

// LoadFile loads the scene from path. On failure the scene is unchanged.
func (s *Scene) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("gameloop: load %s: %w", path, err)
	}
	defer f.Close()
	if err := s.Load(f); err != nil {
		return err
	}
	s.logger.Info("scene loaded", "path", path)
	return nil
}

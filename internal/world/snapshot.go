package world

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"blockworld/internal/profiling"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	snapshotMagic   = "BWSN"
	snapshotVersion = uint16(1)
)

// ErrCorruptSnapshot is returned (wrapped) when a snapshot file exists but cannot be decoded.
var ErrCorruptSnapshot = errors.New("corrupt world snapshot")

type snapshotHeader struct {
	Magic   [4]byte
	Version uint16
	Seed    uint32
	Count   uint32
}

type chunkHeader struct {
	X, Z int32
}

// Save writes the whole world as one zstd-compressed snapshot. The file is replaced
// atomically, so a crash mid-save leaves the previous snapshot intact.
func (w *World) Save(path string) error {
	defer profiling.Track("world.Save")()

	raw, err := w.marshalSnapshot()
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return errors.Wrap(err, "create zstd encoder")
	}
	data := enc.EncodeAll(raw, nil)
	enc.Close()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}
	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return errors.Wrapf(err, "sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "rename snapshot to %s", path)
	}

	logrus.WithFields(logrus.Fields{"path": path, "chunks": len(w.chunks), "bytes": len(data)}).Info("world saved")
	return nil
}

// Load reads a snapshot written by Save. A missing file is not an error: a fresh world
// with fallbackSeed is returned instead. Undecodable files yield ErrCorruptSnapshot.
func Load(path string, fallbackSeed uint32) (*World, error) {
	defer profiling.Track("world.Load")()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logrus.WithField("path", path).Info("no snapshot found, creating new world")
		return New(fallbackSeed), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.Wrap(err, "create zstd decoder")
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptSnapshot, "decompress %s: %v", path, err)
	}

	w, err := unmarshalSnapshot(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	logrus.WithFields(logrus.Fields{"path": path, "chunks": len(w.chunks), "seed": w.Seed}).Info("world loaded")
	return w, nil
}

func (w *World) marshalSnapshot() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(14 + len(w.chunks)*(8+ChunkVolume))

	hdr := snapshotHeader{Version: snapshotVersion, Seed: w.Seed, Count: uint32(len(w.chunks))}
	copy(hdr.Magic[:], snapshotMagic)
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		return nil, err
	}

	raw := make([]byte, ChunkVolume)
	for _, c := range w.Chunks() {
		if err := binary.Write(&buf, binary.LittleEndian, chunkHeader{X: int32(c.X), Z: int32(c.Z)}); err != nil {
			return nil, err
		}
		for i, b := range c.blocks {
			raw[i] = byte(b)
		}
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

func unmarshalSnapshot(data []byte) (*World, error) {
	r := bytes.NewReader(data)

	var hdr snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, errors.Wrapf(ErrCorruptSnapshot, "header: %v", err)
	}
	if string(hdr.Magic[:]) != snapshotMagic {
		return nil, errors.Wrapf(ErrCorruptSnapshot, "bad magic %q", hdr.Magic[:])
	}
	if hdr.Version != snapshotVersion {
		return nil, errors.Wrapf(ErrCorruptSnapshot, "unsupported version %d", hdr.Version)
	}
	if int64(hdr.Count)*(8+ChunkVolume) > int64(r.Len()) {
		return nil, errors.Wrapf(ErrCorruptSnapshot, "truncated: %d chunks declared, %d bytes left", hdr.Count, r.Len())
	}

	w := New(hdr.Seed)
	raw := make([]byte, ChunkVolume)
	for i := uint32(0); i < hdr.Count; i++ {
		var ch chunkHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			return nil, errors.Wrapf(ErrCorruptSnapshot, "chunk %d header: %v", i, err)
		}
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, errors.Wrapf(ErrCorruptSnapshot, "chunk %d blocks: %v", i, err)
		}
		c := NewChunk(int(ch.X), int(ch.Z))
		for j, b := range raw {
			t := BlockType(b)
			if !t.Valid() {
				return nil, errors.Wrapf(ErrCorruptSnapshot, "chunk (%d,%d): unknown block kind %d", ch.X, ch.Z, b)
			}
			c.blocks[j] = t
		}
		if !w.AddChunk(c) {
			return nil, errors.Wrapf(ErrCorruptSnapshot, "duplicate chunk (%d,%d)", ch.X, ch.Z)
		}
	}
	if r.Len() != 0 {
		return nil, errors.Wrapf(ErrCorruptSnapshot, "%d trailing bytes", r.Len())
	}
	return w, nil
}

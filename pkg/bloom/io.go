package bloom

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/dd0wney/cluso-bloomdbg/pkg/kmer"
)

// File format, all integers big-endian:
//
//	[magic "CBDF":4][version:4][k:4][numHashes:4]
//	[seedLen:4][seed pattern:seedLen]
//	[bitCount:8][buildID:16][createdUnix:8]
//	[payloadLen:8][snappy-compressed bit words][crc32 of payload:4]
const (
	fileMagic   = "CBDF"
	fileVersion = 1
)

// FileInfo describes a persisted filter's provenance.
type FileInfo struct {
	Version   uint32
	BuildID   uuid.UUID
	CreatedAt time.Time
}

// Write serializes the filter to w with a freshly generated build ID and
// returns the provenance it stamped.
func Write(w io.Writer, f *Filter) (FileInfo, error) {
	info := FileInfo{
		Version:   fileVersion,
		BuildID:   uuid.New(),
		CreatedAt: time.Now().Truncate(time.Second),
	}

	raw := make([]byte, 8*len(f.words))
	for i, word := range f.words {
		binary.BigEndian.PutUint64(raw[8*i:], word)
	}
	payload := snappy.Encode(nil, raw)

	seed := []byte(f.cfg.Seed.String())
	header := make([]byte, 0, 52+len(seed))
	header = append(header, fileMagic...)
	header = binary.BigEndian.AppendUint32(header, fileVersion)
	header = binary.BigEndian.AppendUint32(header, uint32(f.cfg.K))
	header = binary.BigEndian.AppendUint32(header, uint32(f.cfg.NumHashes))
	header = binary.BigEndian.AppendUint32(header, uint32(len(seed)))
	header = append(header, seed...)
	header = binary.BigEndian.AppendUint64(header, f.m)
	header = append(header, info.BuildID[:]...)
	header = binary.BigEndian.AppendUint64(header, uint64(info.CreatedAt.Unix()))
	header = binary.BigEndian.AppendUint64(header, uint64(len(payload)))

	if _, err := w.Write(header); err != nil {
		return FileInfo{}, err
	}
	if _, err := w.Write(payload); err != nil {
		return FileInfo{}, err
	}
	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], crc32.ChecksumIEEE(payload))
	if _, err := w.Write(crc[:]); err != nil {
		return FileInfo{}, err
	}
	return info, nil
}

// Read deserializes a filter written by Write, validating magic, version,
// header fields, and the payload checksum.
func Read(r io.Reader) (*Filter, FileInfo, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, FileInfo{}, truncated(err)
	}
	if string(magic[:]) != fileMagic {
		return nil, FileInfo{}, fmt.Errorf("%w: magic %q", ErrBadMagic, magic[:])
	}

	fixed := make([]byte, 16)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, FileInfo{}, truncated(err)
	}
	version := binary.BigEndian.Uint32(fixed[0:4])
	if version != fileVersion {
		return nil, FileInfo{}, fmt.Errorf("%w: %d", ErrVersion, version)
	}
	k := binary.BigEndian.Uint32(fixed[4:8])
	numHashes := binary.BigEndian.Uint32(fixed[8:12])
	seedLen := binary.BigEndian.Uint32(fixed[12:16])
	if seedLen > kmer.MaxK {
		return nil, FileInfo{}, fmt.Errorf("%w: seed length %d", ErrHeaderField, seedLen)
	}
	seed := make([]byte, seedLen)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, FileInfo{}, truncated(err)
	}

	cfg, err := kmer.NewConfig(int(k), int(numHashes), string(seed))
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("%w: %v", ErrHeaderField, err)
	}

	tail := make([]byte, 8+16+8+8)
	if _, err := io.ReadFull(r, tail); err != nil {
		return nil, FileInfo{}, truncated(err)
	}
	bitCount := binary.BigEndian.Uint64(tail[0:8])
	if bitCount < MinBits || bitCount%64 != 0 {
		return nil, FileInfo{}, fmt.Errorf("%w: bit count %d", ErrHeaderField, bitCount)
	}
	info := FileInfo{Version: version}
	copy(info.BuildID[:], tail[8:24])
	info.CreatedAt = time.Unix(int64(binary.BigEndian.Uint64(tail[24:32])), 0)
	payloadLen := binary.BigEndian.Uint64(tail[32:40])
	if payloadLen > snappyMaxLen(bitCount) {
		return nil, FileInfo{}, fmt.Errorf("%w: payload length %d", ErrHeaderField, payloadLen)
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, FileInfo{}, truncated(err)
	}
	var crc [4]byte
	if _, err := io.ReadFull(r, crc[:]); err != nil {
		return nil, FileInfo{}, truncated(err)
	}
	if binary.BigEndian.Uint32(crc[:]) != crc32.ChecksumIEEE(payload) {
		return nil, FileInfo{}, ErrChecksum
	}

	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("%w: %v", ErrChecksum, err)
	}
	if uint64(len(raw)) != bitCount/8 {
		return nil, FileInfo{}, fmt.Errorf("%w: decompressed to %d bytes, want %d",
			ErrHeaderField, len(raw), bitCount/8)
	}

	f := &Filter{
		words: make([]uint64, bitCount/64),
		m:     bitCount,
		cfg:   cfg,
	}
	for i := range f.words {
		f.words[i] = binary.BigEndian.Uint64(raw[8*i:])
	}
	return f, info, nil
}

// Save writes the filter to path, replacing any existing file.
func Save(path string, f *Filter) (FileInfo, error) {
	file, err := os.Create(path)
	if err != nil {
		return FileInfo{}, &FileError{Op: "save", Path: path, Cause: err}
	}
	w := bufio.NewWriter(file)
	info, err := Write(w, f)
	if err == nil {
		err = w.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return FileInfo{}, &FileError{Op: "save", Path: path, Cause: err}
	}
	return info, nil
}

// Load reads a filter from path.
func Load(path string) (*Filter, FileInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, FileInfo{}, &FileError{Op: "load", Path: path, Cause: err}
	}
	defer file.Close()
	f, info, err := Read(bufio.NewReader(file))
	if err != nil {
		return nil, FileInfo{}, &FileError{Op: "load", Path: path, Cause: err}
	}
	return f, info, nil
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}

// snappyMaxLen bounds the plausible compressed size so a corrupt header
// cannot trigger a huge allocation.
func snappyMaxLen(bitCount uint64) uint64 {
	return uint64(snappy.MaxEncodedLen(int(bitCount/8))) + 64
}

package torrent

import (
	"crypto/sha1"
	"fmt"
	"math"

	"github.com/torrent-meta/bencode"
)

// HashSize is the length of a SHA-1 digest, and so of each piece hash and
// of the info hash.
const HashSize = sha1.Size

// Meta is a decoded .torrent file. Keys that are not part of the schema are
// kept in Leftovers and written back out on encode.
//
// Empty and nil encode the same way, so decoding always yields nil for an
// empty Leftovers, Pieces or file list.
type Meta struct {
	Announce  string
	Info      MetaInfo
	Leftovers bencode.Dict
}

// MetaInfo is the info dictionary. Its canonical encoding is what the info
// hash is computed over, so Leftovers must survive a decode/encode cycle.
type MetaInfo struct {
	Name        string
	PieceLength int64
	Pieces      []byte
	Files       DownloadType
	Leftovers   bencode.Dict
}

// DownloadType is either Single or Multiple.
type DownloadType interface {
	TotalLength() int64
	key() string
	value() bencode.Value
}

// Single is a torrent of one file, stored under the info name.
type Single struct {
	Length int64
}

// Multiple is a torrent of several files inside a directory named after the
// info name. The files are laid out back to back in list order.
type Multiple struct {
	Files []File
}

// File is one entry of a multiple file torrent. The last path segment is the
// file name, the ones before it are directories.
type File struct {
	Length    int64
	Path      []string
	Leftovers bencode.Dict
}

func (s Single) TotalLength() int64 { return s.Length }
func (Single) key() string          { return "length" }
func (s Single) value() bencode.Value {
	return bencode.Integer(s.Length)
}

// TotalLength sums the file lengths. Decoding rejects lists whose sum does
// not fit in an int64.
func (m Multiple) TotalLength() int64 {
	var total int64
	for _, f := range m.Files {
		total += f.Length
	}
	return total
}

func (Multiple) key() string { return "files" }

func (m Multiple) value() bencode.Value {
	files := make(bencode.List, 0, len(m.Files))
	for _, f := range m.Files {
		files = append(files, f.Value())
	}
	return files
}

// Parse decodes the bytes of a .torrent file.
func Parse(data []byte) (Meta, error) {
	v, err := bencode.Decode(data)
	if err != nil {
		return Meta{}, err
	}
	return DecodeMeta(v)
}

func DecodeMeta(v bencode.Value) (Meta, error) {
	rest, err := bencode.ExpectDict(v)
	if err != nil {
		return Meta{}, err
	}

	announce, residual, err := bencode.KeyedTextString(rest, "announce")
	if err != nil {
		return Meta{}, within("announce", err)
	}
	info, residual, err := bencode.KeyedDict(residual, "info")
	if err != nil {
		return Meta{}, within("info", err)
	}
	mi, err := DecodeMetaInfo(info)
	if err != nil {
		return Meta{}, within("info", err)
	}

	return Meta{
		Announce:  announce,
		Info:      mi,
		Leftovers: leftovers(residual),
	}, nil
}

func DecodeMetaInfo(v bencode.Value) (MetaInfo, error) {
	rest, err := bencode.ExpectDict(v)
	if err != nil {
		return MetaInfo{}, err
	}

	name, residual, err := bencode.KeyedTextString(rest, "name")
	if err != nil {
		return MetaInfo{}, within("name", err)
	}
	pieceLength, residual, err := bencode.KeyedInteger(residual, "piece length")
	if err != nil {
		return MetaInfo{}, within("piece length", err)
	}
	if pieceLength <= 0 {
		return MetaInfo{}, within("piece length", &PieceLengthError{Length: pieceLength})
	}
	pieces, residual, err := keyedBytes(residual, "pieces")
	if err != nil {
		return MetaInfo{}, within("pieces", err)
	}
	if len(pieces)%HashSize != 0 {
		return MetaInfo{}, within("pieces", &PiecesError{Len: len(pieces)})
	}

	files, residual, err := decodeDownloadType(residual)
	if err != nil {
		return MetaInfo{}, err
	}

	return MetaInfo{
		Name:        name,
		PieceLength: pieceLength,
		Pieces:      pieces,
		Files:       files,
		Leftovers:   leftovers(residual),
	}, nil
}

// decodeDownloadType takes length or files, whichever one is present, out
// of d.
func decodeDownloadType(d bencode.Value) (DownloadType, bencode.Value, error) {
	dict, err := bencode.ExpectDict(d)
	if err != nil {
		return nil, nil, err
	}
	length, hasLength := dict["length"]
	files, hasFiles := dict["files"]

	switch {
	case hasLength && hasFiles:
		return nil, nil, &KeyPairError{First: "length", FirstValue: length, Second: "files", SecondValue: files}

	case hasLength:
		n, rest, err := bencode.KeyedInteger(dict, "length")
		if err != nil {
			return nil, nil, within("length", err)
		}
		if n < 0 {
			return nil, nil, within("length", &LengthError{Length: n})
		}
		return Single{Length: n}, rest, nil

	case hasFiles:
		list, rest, err := bencode.KeyedList(dict, "files")
		if err != nil {
			return nil, nil, within("files", err)
		}
		var entries []File
		var total int64
		for i, item := range list {
			f, err := DecodeFile(item)
			if err != nil {
				return nil, nil, within(fmt.Sprintf("files[%d]", i), err)
			}
			if f.Length > math.MaxInt64-total {
				return nil, nil, within(fmt.Sprintf("files[%d]", i), within("length", ErrLengthOverflow))
			}
			total += f.Length
			entries = append(entries, f)
		}
		return Multiple{Files: entries}, rest, nil
	}

	return nil, nil, &bencode.KeyNotFoundError{Key: "length or files"}
}

func DecodeFile(v bencode.Value) (File, error) {
	rest, err := bencode.ExpectDict(v)
	if err != nil {
		return File{}, err
	}

	length, residual, err := bencode.KeyedInteger(rest, "length")
	if err != nil {
		return File{}, within("length", err)
	}
	if length < 0 {
		return File{}, within("length", &LengthError{Length: length})
	}
	segments, residual, err := bencode.KeyedList(residual, "path")
	if err != nil {
		return File{}, within("path", err)
	}
	if len(segments) == 0 {
		return File{}, within("path", ErrEmptyPath)
	}

	path := make([]string, 0, len(segments))
	for i, seg := range segments {
		s, err := bencode.ExpectTextString(seg)
		if err != nil {
			return File{}, within(fmt.Sprintf("path[%d]", i), err)
		}
		path = append(path, s)
	}

	return File{
		Length:    length,
		Path:      path,
		Leftovers: leftovers(residual),
	}, nil
}

func (m Meta) Value() bencode.Value {
	d := withLeftovers(m.Leftovers)
	d["announce"] = bencode.TextString(m.Announce)
	d["info"] = m.Info.Value()
	return d
}

func (mi MetaInfo) Value() bencode.Value {
	d := withLeftovers(mi.Leftovers)
	d["name"] = bencode.TextString(mi.Name)
	d["piece length"] = bencode.Integer(mi.PieceLength)
	d["pieces"] = bencode.ByteString(mi.Pieces)
	if mi.Files != nil {
		d[mi.Files.key()] = mi.Files.value()
	}
	return d
}

func (f File) Value() bencode.Value {
	path := make(bencode.List, 0, len(f.Path))
	for _, seg := range f.Path {
		path = append(path, bencode.TextString(seg))
	}
	d := withLeftovers(f.Leftovers)
	d["length"] = bencode.Integer(f.Length)
	d["path"] = path
	return d
}

func (m Meta) Encode() []byte {
	return bencode.Encode(m.Value())
}

func (mi MetaInfo) Encode() []byte {
	return bencode.Encode(mi.Value())
}

// InfoHash is the SHA-1 digest of the canonical encoding of the info
// dictionary, the identity of the torrent on trackers and peer connections.
func (m Meta) InfoHash() [HashSize]byte {
	return m.Info.InfoHash()
}

func (mi MetaInfo) InfoHash() [HashSize]byte {
	return sha1.Sum(mi.Encode())
}

// PieceHashes splits Pieces into one digest per piece.
func (mi MetaInfo) PieceHashes() [][HashSize]byte {
	hashes := make([][HashSize]byte, mi.PieceCount())
	for i := range hashes {
		copy(hashes[i][:], mi.Pieces[i*HashSize:(i+1)*HashSize])
	}
	return hashes
}

func (mi MetaInfo) PieceCount() int {
	return len(mi.Pieces) / HashSize
}

func (mi MetaInfo) TotalLength() int64 {
	if mi.Files == nil {
		return 0
	}
	return mi.Files.TotalLength()
}

// keyedBytes is KeyedByteString that also takes a text string, since piece
// hashes that happen to be valid UTF-8 decode as one.
func keyedBytes(v bencode.Value, key string) ([]byte, bencode.Value, error) {
	b, rest, err := bencode.KeyedByteString(v, key)
	if err != nil {
		s, textRest, textErr := bencode.KeyedTextString(v, key)
		if textErr != nil {
			return nil, nil, err
		}
		b, rest = []byte(s), textRest
	}
	if len(b) == 0 {
		return nil, rest, nil
	}
	return b, rest, nil
}

func leftovers(residual bencode.Value) bencode.Dict {
	d, _ := residual.(bencode.Dict)
	if len(d) == 0 {
		return nil
	}
	return d
}

func withLeftovers(extra bencode.Dict) bencode.Dict {
	d := make(bencode.Dict, len(extra)+4)
	for k, v := range extra {
		d[k] = v
	}
	return d
}

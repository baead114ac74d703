package torrent

import (
	"crypto/rand"
	"io"
)

// PeerIDPrefix starts every peer id this client generates.
const PeerIDPrefix = "-TM0001-"

// Torrent is the flattened view of a Meta that a download session works
// from.
type Torrent struct {
	PeerId      [20]byte
	Announce    string
	PieceLength int64
	Pieces      [][HashSize]byte
	Name        string
	PieceCount  int
	InfoHash    [HashSize]byte
	Length      int64
	Meta        Meta
}

func New(r io.Reader) (*Torrent, error) {
	meta, err := Load(r)
	if err != nil {
		return nil, err
	}
	return FromMeta(meta)
}

func FromMeta(meta Meta) (*Torrent, error) {
	peerId, err := NewPeerID()
	if err != nil {
		return nil, err
	}

	return &Torrent{
		PeerId:      peerId,
		Announce:    meta.Announce,
		PieceLength: meta.Info.PieceLength,
		Pieces:      meta.Info.PieceHashes(),
		Name:        meta.Info.Name,
		PieceCount:  meta.Info.PieceCount(),
		InfoHash:    meta.InfoHash(),
		Length:      meta.Info.TotalLength(),
		Meta:        meta,
	}, nil
}

func NewPeerID() ([20]byte, error) {
	var peerId [20]byte
	copy(peerId[:], PeerIDPrefix)
	if _, err := rand.Read(peerId[len(PeerIDPrefix):]); err != nil {
		return [20]byte{}, err
	}
	return peerId, nil
}

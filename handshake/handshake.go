package handshake

import (
	"bytes"
	"errors"
	"io"
)

const Pstr = "BitTorrent protocol"

// Size is the length of a handshake on the wire: the length-prefixed
// protocol string, 8 reserved bytes, the info hash and the peer id.
const Size = 1 + len(Pstr) + 8 + 20 + 20

var header = append([]byte{byte(len(Pstr))}, Pstr...)

var (
	ErrNoHeader      = errors.New("handshake: no BitTorrent protocol header")
	ErrUnexpectedEnd = errors.New("handshake: message ended unexpectedly")
	ErrOverflow      = errors.New("handshake: message longer than 68 bytes")
)

type Handshake struct {
	InfoHash [20]byte
	PeerId   [20]byte
}

func New(infoHash [20]byte, peerId [20]byte) *Handshake {
	return &Handshake{
		InfoHash: infoHash,
		PeerId:   peerId,
	}
}

func (h *Handshake) Serialize() []byte {
	buff := make([]byte, Size)
	curr := copy(buff, header)
	curr += 8
	curr += copy(buff[curr:], h.InfoHash[:])
	copy(buff[curr:], h.PeerId[:])
	return buff
}

// Deserialize parses a complete handshake. The reserved bytes are not
// checked. A buffer that does not hold the whole protocol header is
// ErrNoHeader; one that stops short after it is ErrUnexpectedEnd.
func Deserialize(buf []byte) (*Handshake, error) {
	if len(buf) < len(header) || !bytes.Equal(buf[:len(header)], header) {
		return nil, ErrNoHeader
	}
	if len(buf) < Size {
		return nil, ErrUnexpectedEnd
	}
	if len(buf) > Size {
		return nil, ErrOverflow
	}

	h := &Handshake{}
	curr := len(header) + 8
	curr += copy(h.InfoHash[:], buf[curr:])
	copy(h.PeerId[:], buf[curr:])
	return h, nil
}

// Read reads one handshake from r.
func Read(r io.Reader) (*Handshake, error) {
	buf := make([]byte, Size)
	n, err := io.ReadFull(r, buf)
	if err == io.ErrUnexpectedEOF {
		return Deserialize(buf[:n])
	}
	if err != nil {
		return nil, err
	}
	return Deserialize(buf)
}

package peers

import (
	"fmt"
	"io"
	"net"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/torrent-meta/handshake"
)

const handshakeTimeout = 3 * time.Second

type RemotePeer struct {
	Conn     net.Conn
	PeerId   [20]byte
	Peer     Peer
	InfoHash [20]byte
}

// Connect exchanges handshakes over conn and checks that the remote side
// is serving the same torrent.
func Connect(conn net.Conn, infoHash, peerId [20]byte) (*handshake.Handshake, error) {
	req := handshake.New(infoHash, peerId)
	conn.SetDeadline(time.Now().Add(handshakeTimeout))
	defer conn.SetDeadline(time.Time{})

	if _, err := conn.Write(req.Serialize()); err != nil {
		return nil, err
	}

	res, err := handshake.Read(conn)
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("connection closed by remote peer")
		}
		return nil, err
	}
	if res.InfoHash != infoHash {
		return nil, fmt.Errorf("info hash mismatch: got %x", res.InfoHash)
	}
	return res, nil
}

func Dial(peer Peer, infoHash, peerId [20]byte) (*RemotePeer, error) {
	conn, err := net.DialTimeout("tcp", peer.String(), handshakeTimeout)
	if err != nil {
		return nil, err
	}
	res, err := Connect(conn, infoHash, peerId)
	if err != nil {
		conn.Close()
		return nil, err
	}
	log.WithFields(log.Fields{"peer": peer.String(), "id": fmt.Sprintf("%q", res.PeerId[:])}).Info("Handshake complete")

	return &RemotePeer{
		Conn:     conn,
		PeerId:   res.PeerId,
		Peer:     peer,
		InfoHash: infoHash,
	}, nil
}

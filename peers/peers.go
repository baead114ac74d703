package peers

import (
	"encoding/binary"
	"fmt"
	"net"
	"strconv"
)

const peerSize = 6

type Peer struct {
	IP   net.IP
	Port uint16
}

// Unmarshal decodes a compact peer list: 4 bytes of IPv4 address followed
// by a 2 byte big-endian port, per peer.
func Unmarshal(resp []byte) ([]Peer, error) {
	if len(resp)%peerSize != 0 {
		return nil, fmt.Errorf("compact peer list length %d is not a multiple of %d", len(resp), peerSize)
	}
	numPeers := len(resp) / peerSize
	peers := make([]Peer, numPeers)

	for i := 0; i < numPeers; i++ {
		offset := i * peerSize
		peers[i].IP = net.IP(append([]byte(nil), resp[offset:offset+4]...))
		peers[i].Port = binary.BigEndian.Uint16(resp[offset+4 : offset+6])
	}
	return peers, nil
}

func (peer Peer) String() string {
	return net.JoinHostPort(peer.IP.String(), strconv.Itoa(int(peer.Port)))
}

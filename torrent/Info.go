package torrent

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"io/ioutil"

	log "github.com/sirupsen/logrus"
	zeebo "github.com/zeebo/bencode"

	"github.com/torrent-meta/bencode"
)

// RawInfoHash hashes the info value exactly as it appears in data, without
// re-encoding it. For a canonically encoded file it equals Meta.InfoHash.
func RawInfoHash(data []byte) ([HashSize]byte, error) {
	var s struct {
		Info zeebo.RawMessage `bencode:"info"`
	}
	if err := zeebo.DecodeBytes(data, &s); err != nil {
		return [HashSize]byte{}, err
	}
	if len(s.Info) == 0 {
		return [HashSize]byte{}, &bencode.KeyNotFoundError{Key: "info"}
	}
	return sha1.Sum(s.Info), nil
}

// Load reads and decodes a whole .torrent file from r.
func Load(r io.Reader) (Meta, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return Meta{}, err
	}
	meta, err := Parse(data)
	if err != nil {
		return Meta{}, err
	}

	canonical := meta.InfoHash()
	raw, err := RawInfoHash(data)
	if err != nil {
		log.WithError(err).Warn("Can not read raw info dictionary")
	} else if raw != canonical {
		log.WithFields(log.Fields{
			"raw":       hex.EncodeToString(raw[:]),
			"canonical": hex.EncodeToString(canonical[:]),
		}).Warn("Info dictionary is not canonically encoded")
	}
	return meta, nil
}

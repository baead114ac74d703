package tracker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jackpal/bencode-go"
	log "github.com/sirupsen/logrus"

	"github.com/torrent-meta/peers"
	"github.com/torrent-meta/torrent"
)

type Event string

const (
	Started   Event = "started"
	Completed Event = "completed"
	Stopped   Event = "stopped"
	// Empty marks a regular announce; it sends no event parameter.
	Empty Event = "empty"
)

// Stats are the transfer counters reported on every announce, in bytes.
type Stats struct {
	Uploaded   int64
	Downloaded int64
	Left       int64
}

type Tracker struct {
	RawUrl *url.URL
	Params url.Values
	Client *http.Client
}

type Response struct {
	Interval time.Duration
	Peers    []peers.Peer
}

type trackerResp struct {
	FailureReason string `bencode:"failure reason"`
	Interval      int    `bencode:"interval"`
	Peers         string `bencode:"peers"`
}

func New(tr *torrent.Torrent, port uint16) (*Tracker, error) {
	base, err := url.Parse(tr.Announce)
	if err != nil {
		return nil, err
	}
	params := url.Values{
		"info_hash": []string{string(tr.InfoHash[:])},
		"peer_id":   []string{string(tr.PeerId[:])},
		"port":      []string{strconv.Itoa(int(port))},
		"compact":   []string{"1"},
	}

	return &Tracker{
		RawUrl: base,
		Params: params,
		Client: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (t *Tracker) URL(stats Stats, event Event) string {
	params := url.Values{}
	for k, v := range t.Params {
		params[k] = v
	}
	params.Set("uploaded", strconv.FormatInt(stats.Uploaded, 10))
	params.Set("downloaded", strconv.FormatInt(stats.Downloaded, 10))
	params.Set("left", strconv.FormatInt(stats.Left, 10))
	if event != Empty && event != "" {
		params.Set("event", string(event))
	}

	u := *t.RawUrl
	u.RawQuery = params.Encode()
	return u.String()
}

// Announce reports stats to the tracker and returns the peers it hands out.
func (t *Tracker) Announce(ctx context.Context, stats Stats, event Event) (*Response, error) {
	target := t.URL(stats, event)
	log.WithFields(log.Fields{"tracker": t.RawUrl.Host, "event": event}).Debug("Announcing")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tracker returned HTTP %d", resp.StatusCode)
	}

	body := trackerResp{}
	if err := bencode.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("decoding tracker response: %w", err)
	}
	if body.FailureReason != "" {
		return nil, fmt.Errorf("tracker failure: %s", body.FailureReason)
	}
	list, err := peers.Unmarshal([]byte(body.Peers))
	if err != nil {
		return nil, err
	}

	return &Response{
		Interval: time.Duration(body.Interval) * time.Second,
		Peers:    list,
	}, nil
}

// GetPeers sends the started announce for a fresh download.
func (t *Tracker) GetPeers(ctx context.Context, left int64) ([]peers.Peer, error) {
	resp, err := t.Announce(ctx, Stats{Left: left}, Started)
	if err != nil {
		return nil, err
	}
	return resp.Peers, nil
}

package tracker

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/torrent-meta/bencode"
	"github.com/torrent-meta/torrent"
)

func testTorrent(announce string) *torrent.Torrent {
	tr := &torrent.Torrent{Announce: announce, Length: 351272960}
	copy(tr.InfoHash[:], "\xd8\xf7\x39\xce\xc3\x28\x95\x6c\xcc\x5b\xbf\x1f\x86\xd9\xfd\xcf\xdb\xa8\xce\xb6")
	copy(tr.PeerId[:], "-TM0001-abcdefghijkl")
	return tr
}

func TestURL(t *testing.T) {
	tr, err := New(testTorrent("http://bttracker.debian.org:6969/announce"), 6882)
	if err != nil {
		t.Fatal(err)
	}

	raw := tr.URL(Stats{Uploaded: 1, Downloaded: 2, Left: 3}, Started)
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", raw, err)
	}
	if u.Host != "bttracker.debian.org:6969" || u.Path != "/announce" {
		t.Errorf("URL() = %q", raw)
	}

	q := u.Query()
	want := map[string]string{
		"info_hash":  "\xd8\xf7\x39\xce\xc3\x28\x95\x6c\xcc\x5b\xbf\x1f\x86\xd9\xfd\xcf\xdb\xa8\xce\xb6",
		"peer_id":    "-TM0001-abcdefghijkl",
		"port":       "6882",
		"uploaded":   "1",
		"downloaded": "2",
		"left":       "3",
		"compact":    "1",
		"event":      "started",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestURLEvents(t *testing.T) {
	tr, err := New(testTorrent("http://tracker.example.com/announce"), 6881)
	if err != nil {
		t.Fatal(err)
	}

	for _, ev := range []Event{Started, Completed, Stopped} {
		u, _ := url.Parse(tr.URL(Stats{}, ev))
		if got := u.Query().Get("event"); got != string(ev) {
			t.Errorf("event = %q, want %q", got, ev)
		}
	}

	u, _ := url.Parse(tr.URL(Stats{}, Empty))
	if _, ok := u.Query()["event"]; ok {
		t.Errorf("Empty event sent an event parameter: %s", u.RawQuery)
	}
}

func TestURLDoesNotMutateTracker(t *testing.T) {
	tr, err := New(testTorrent("http://tracker.example.com/announce"), 6881)
	if err != nil {
		t.Fatal(err)
	}
	tr.URL(Stats{Left: 10}, Stopped)
	if _, ok := tr.Params["event"]; ok {
		t.Errorf("URL() changed the base parameters")
	}
	if tr.RawUrl.RawQuery != "" {
		t.Errorf("URL() changed the base url")
	}
}

func TestAnnounce(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write(bencode.Encode(bencode.Dict{
			"interval": bencode.Integer(900),
			"peers": bencode.ByteString{
				192, 168, 1, 2, 0x1a, 0xe1,
				10, 0, 0, 7, 0xc8, 0xd5,
			},
		}))
	}))
	defer srv.Close()

	tr, err := New(testTorrent(srv.URL+"/announce"), 6881)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := tr.Announce(context.Background(), Stats{Left: 100}, Started)
	if err != nil {
		t.Fatalf("Announce() error = %v", err)
	}

	if resp.Interval != 900*time.Second {
		t.Errorf("Interval = %v, want 15m", resp.Interval)
	}
	if len(resp.Peers) != 2 {
		t.Fatalf("got %d peers, want 2", len(resp.Peers))
	}
	if !resp.Peers[0].IP.Equal(net.IPv4(192, 168, 1, 2)) || resp.Peers[0].Port != 6881 {
		t.Errorf("peer 0 = %v", resp.Peers[0])
	}
	if resp.Peers[1].String() != "10.0.0.7:51413" {
		t.Errorf("peer 1 = %v", resp.Peers[1])
	}
	if query.Get("left") != "100" || query.Get("event") != "started" {
		t.Errorf("tracker saw query %v", query)
	}
}

func TestAnnounceErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   []byte
	}{
		{
			name:   "failure reason",
			status: http.StatusOK,
			body:   bencode.Encode(bencode.Dict{"failure reason": bencode.TextString("unregistered torrent")}),
		},
		{
			name:   "bad peers length",
			status: http.StatusOK,
			body: bencode.Encode(bencode.Dict{
				"interval": bencode.Integer(60),
				"peers":    bencode.TextString("12345"),
			}),
		},
		{
			name:   "not bencode",
			status: http.StatusOK,
			body:   []byte("<html>"),
		},
		{
			name:   "http error",
			status: http.StatusNotFound,
			body:   []byte("not found"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write(tt.body)
			}))
			defer srv.Close()

			tr, err := New(testTorrent(srv.URL), 6881)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := tr.Announce(context.Background(), Stats{}, Empty); err == nil {
				t.Errorf("Announce() succeeded, want error")
			}
		})
	}
}

func TestGetPeers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("left") != "351272960" {
			t.Errorf("left = %q", r.URL.Query().Get("left"))
		}
		w.Write([]byte("d8:intervali60e5:peers6:\x7f\x00\x00\x01\x1a\xe1e"))
	}))
	defer srv.Close()

	tt := testTorrent(srv.URL)
	tr, err := New(tt, 6881)
	if err != nil {
		t.Fatal(err)
	}
	list, err := tr.GetPeers(context.Background(), tt.Length)
	if err != nil {
		t.Fatalf("GetPeers() error = %v", err)
	}
	if len(list) != 1 || list[0].String() != "127.0.0.1:6881" {
		t.Errorf("GetPeers() = %v", list)
	}
}

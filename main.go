package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/torrent-meta/peers"
	"github.com/torrent-meta/torrent"
	"github.com/torrent-meta/tracker"
)

func main() {
	port := flag.Uint("port", 6881, "port reported to the tracker")
	announce := flag.Bool("announce", false, "announce to the tracker and list the peers it returns")
	handshakes := flag.Int("handshake", 0, "handshake with up to `n` peers from the announce")
	dump := flag.Bool("dump", false, "print the decoded bencode tree")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file.torrent\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *port > 65535 {
		log.Fatalf("Invalid port %d", *port)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	t, err := torrent.New(f)
	f.Close()
	if err != nil {
		log.WithField("file", flag.Arg(0)).Fatal(err)
	}

	log.WithFields(log.Fields{
		"name":      t.Name,
		"info_hash": fmt.Sprintf("%x", t.InfoHash),
		"length":    t.Length,
		"pieces":    t.PieceCount,
	}).Info("Loaded torrent")
	fmt.Printf("%x  %s\n", t.InfoHash, t.Name)

	if *dump {
		fmt.Println(t.Meta.Value())
	}
	if !*announce && *handshakes == 0 {
		return
	}

	tr, err := tracker.New(t, uint16(*port))
	if err != nil {
		log.Fatal(err)
	}
	list, err := tr.GetPeers(context.Background(), t.Length)
	if err != nil {
		log.WithField("tracker", t.Announce).Fatal(err)
	}
	log.WithField("count", len(list)).Info("Got peers")
	for _, p := range list {
		fmt.Println(p)
	}

	connected := 0
	for _, p := range list {
		if connected >= *handshakes {
			break
		}
		remote, err := peers.Dial(p, t.InfoHash, t.PeerId)
		if err != nil {
			log.WithField("peer", p.String()).Debug(err)
			continue
		}
		remote.Conn.Close()
		connected++
	}
	if *handshakes > 0 {
		log.WithField("count", connected).Info("Handshakes done")
	}
}

package kkdai

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/Darkatse/SimiluBot/internal/music/parsers"

	_ "github.com/bdandy/go-socks4"
	youtube "github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/proxy"
)

const (
	channels   = 2
	sampleRate = 48000
	frameSize  = 960 // 20ms at 48kHz
)

// proxyAddr is the optional proxy used for all YouTube traffic; set once at
// startup via SetProxy.
var proxyAddr string

func SetProxy(addr string) {
	proxyAddr = addr
}

type KKDAIStreamer struct{}

func (s *KKDAIStreamer) GetLinkStream(track *parsers.TrackParse, seekSec float64) (io.ReadCloser, func(), error) {
	return kkdaiLink(track, seekSec)
}
func (s *KKDAIStreamer) GetPipeStream(track *parsers.TrackParse, seekSec float64) (io.ReadCloser, func(), error) {
	return kkdaiPipe(track, seekSec)
}
func (s *KKDAIStreamer) SupportsPipe() bool {
	return true
}

// NewClient builds a youtube client honoring the configured proxy. An empty
// or broken proxy setting falls back to a direct client.
func NewClient() *youtube.Client {
	if proxyAddr == "" {
		return &youtube.Client{
			HTTPClient: &http.Client{
				Timeout: 15 * time.Second,
			},
		}
	}

	proxyURL, err := url.Parse(proxyAddr)
	if err != nil {
		log.Warn().Err(err).Str("proxy", proxyAddr).Msg("invalid proxy address, going direct")
		return &youtube.Client{HTTPClient: &http.Client{Timeout: 15 * time.Second}}
	}

	var transport *http.Transport

	switch proxyURL.Scheme {
	case "http", "https":
		transport = &http.Transport{
			Proxy: http.ProxyURL(proxyURL),
		}
	case "socks5":
		auth := &proxy.Auth{}
		if proxyURL.User != nil {
			auth.User = proxyURL.User.Username()
			if pass, ok := proxyURL.User.Password(); ok {
				auth.Password = pass
			}
		}
		dialer, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, &net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 10 * time.Second,
		})
		if err != nil {
			log.Warn().Err(err).Msg("socks5 dialer error, going direct")
			break
		}
		transport = &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}
	case "socks4":
		dialer, err := proxy.FromURL(proxyURL, &net.Dialer{
			Timeout: 10 * time.Second,
		})
		if err != nil {
			log.Warn().Err(err).Msg("socks4 dialer error, going direct")
			break
		}
		transport = &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}
	default:
		log.Warn().Str("scheme", proxyURL.Scheme).Msg("unsupported proxy scheme, going direct")
	}

	if transport == nil {
		return &youtube.Client{HTTPClient: &http.Client{Timeout: 15 * time.Second}}
	}

	log.Debug().Str("proxy", proxyAddr).Msg("youtube client using proxy")
	return &youtube.Client{
		HTTPClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

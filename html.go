/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

func cspHome(w http.ResponseWriter) {
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self'")
}

func wsURL(cfg *Config, r *http.Request) string {
	scheme := "ws"
	if cfg.scheme() == "https" || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "wss"
	}

	return scheme + "://" + r.Host + cfg.prefix + "/ws"
}

func serveHomePage(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)
		cspHome(w)

		body := fmt.Sprintf(`<h1>lingokub</h1><img src="%s/qr" alt="QR code for this game" width="320" height="320"><p>Connect a client to <code>%s?playerId=&lt;id&gt;&amp;username=&lt;name&gt;</code></p>`,
			html.EscapeString(cfg.prefix),
			html.EscapeString(wsURL(cfg, r)),
		)

		if _, err := io.WriteString(w, newPage("lingokub", body)); err != nil {
			log.Debug().Err(err).Msg("write home page")

			return
		}

		log.Debug().Str("addr", realIP(r)).Msg("served home page")
	}
}

func serveHealthCheck(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		if _, err := w.Write([]byte("Ok\n")); err != nil {
			log.Debug().Err(err).Msg("write health check")
		}
	}
}

func serveRobots(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: Amazonbot
Disallow: /

User-agent: Applebot-Extended
Disallow: /

User-agent: Bytespider
Disallow: /

User-agent: CCBot
Disallow: /

User-agent: ClaudeBot
Disallow: /

User-agent: Google-Extended
Disallow: /

User-agent: GPTBot
Disallow: /

User-agent: meta-externalagent
Disallow: /`

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		if _, err := w.Write([]byte(data)); err != nil {
			log.Debug().Err(err).Msg("write robots.txt")
		}
	}
}

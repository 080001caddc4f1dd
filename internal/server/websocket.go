package server

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/ha1tch/qplot/internal/render"
	"github.com/ha1tch/qplot/pkg/simulation"
)

const wsWriteTimeout = 10 * time.Second

// handleWebsocket bridges a host that posts simulation messages. Every
// frame is answered: SVG text for a completed simulation, a
// simulationError JSON message otherwise. Text frames carry JSON, binary
// frames msgpack.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: s.devMode,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")
	conn.SetReadLimit(maxBodyBytes)

	ctx := r.Context()
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			s.log.Debug().Err(err).Msg("Websocket read ended")
			return
		}

		reply := s.answerFrame(typ, data)

		writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
		err = conn.Write(writeCtx, websocket.MessageText, reply)
		cancel()
		if err != nil {
			s.log.Warn().Err(err).Msg("Websocket write failed")
			return
		}
	}
}

func (s *Server) answerFrame(typ websocket.MessageType, data []byte) []byte {
	contentType := "application/json"
	if typ == websocket.MessageBinary {
		contentType = simulation.ContentTypeMsgpack
	}

	msg, err := simulation.DecodeMessage(contentType, data)
	if err != nil {
		return s.failure(err.Error())
	}

	opts := render.DefaultOptions()
	opts.Width, opts.Height = s.cfg.Width, s.cfg.Height
	opts.Log = s.log

	var out bytes.Buffer
	var failed string
	err = simulation.Deliver(msg,
		func(res simulation.Result) error {
			return render.To(&out, render.FormatSVG, res.Statevector, opts)
		},
		func(text string) { failed = text })
	switch {
	case err != nil:
		return s.failure(err.Error())
	case msg.Type == simulation.TypeError:
		return s.failure(failed)
	}
	return out.Bytes()
}

func (s *Server) failure(text string) []byte {
	b, err := simulation.ToJSON(simulation.Failed(text), false)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode websocket error")
		return []byte(`{"type":"simulationError"}`)
	}
	return b
}

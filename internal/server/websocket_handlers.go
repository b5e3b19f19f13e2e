package server

import (
	"log"

	"feedline/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler returns a websocket handler that registers feed subscribers
// with the Hub. Authentication is handled by route middleware and userID is
// read from connection locals.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		observability.ActiveWebSockets.Inc()
		defer observability.ActiveWebSockets.Dec()

		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}
		uid, ok := userIDVal.(uint)
		if !ok {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}

		// Register connection with scaling guardrails
		client, err := s.broadcaster.Hub().Register(uid, conn)
		if err != nil {
			log.Printf("feed websocket: failed to register user %d: %v", uid, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		defer s.broadcaster.Hub().UnregisterClient(client)

		// Start pumps; ReadPump blocks until the peer disconnects
		go client.WritePump()
		client.ReadPump()
	})
}

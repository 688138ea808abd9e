// Package websocket serves the realtime board feed over Centrifuge.
package websocket

package live

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

// Event types pushed to staff dashboards.
const (
	EventOrderCreated  = "order_created"
	EventOrderUpdate   = "order_update"
	EventPaymentUpdate = "payment_update"
	EventStaffNotif    = "staff_notification"
)

type Message struct {
	Event    string      `json:"event"`
	PortalID uint        `json:"portal_id"`
	Data     interface{} `json:"data"`
}

type client struct {
	portalID uint
	role     string
}

// Hub holds the cashier/kitchen dashboard connections and fans events
// out to the clients watching the affected portal.
type Hub struct {
	clients map[*websocket.Conn]client
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]client),
}

// RegisterClient adds a connection scoped to one portal.
func RegisterClient(conn *websocket.Conn, portalID uint, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = client{portalID: portalID, role: role}
}

// UnregisterClient drops a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated announces a new order to the portal's staff.
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{
		Event:    EventOrderCreated,
		PortalID: order.PortalID,
		Data:     order,
	})
}

// BroadcastOrderUpdate announces a status change.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event:    EventOrderUpdate,
		PortalID: order.PortalID,
		Data:     order,
	})
}

// BroadcastPaymentUpdate announces a recorded payment.
func BroadcastPaymentUpdate(order models.Order) {
	broadcast(Message{
		Event:    EventPaymentUpdate,
		PortalID: order.PortalID,
		Data:     order,
	})
}

// BroadcastStaffNotification sends a plain-text notice to a portal's staff.
func BroadcastStaffNotification(portalID uint, message string) {
	broadcast(Message{
		Event:    EventStaffNotif,
		PortalID: portalID,
		Data:     message,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling live message: %v", err)
		return
	}

	for conn, cl := range hub.clients {
		if cl.portalID != msg.PortalID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending live message to %s client: %v", cl.role, err)
		}
	}
}

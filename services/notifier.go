package services

import (
	"log"

	pubnub "github.com/pubnub/go"
)

// Notifier pushes queue announcements to the waiting-room display channel.
// Publishing is best effort: a down PubNub never fails a ticket operation.
type Notifier struct {
	pn      *pubnub.PubNub
	channel string
}

func NewNotifier(pn *pubnub.PubNub, channel string) *Notifier {
	return &Notifier{pn: pn, channel: channel}
}

// TicketCalled announces that a ticket was called to a counter.
func (n *Notifier) TicketCalled(number, counterID, counterName string) {
	n.publish(map[string]any{
		"type":         "ticket_called",
		"number":       number,
		"counter_id":   counterID,
		"counter_name": counterName,
	})
}

// TicketCreated announces a fresh ticket so the board can refresh.
func (n *Notifier) TicketCreated(number string, estimatedWait int) {
	n.publish(map[string]any{
		"type":           "ticket_created",
		"number":         number,
		"estimated_wait": estimatedWait,
	})
}

func (n *Notifier) publish(message map[string]any) {
	if n == nil || n.pn == nil {
		return
	}

	_, pnStatus, err := n.pn.Publish().
		Channel(n.channel).
		Message(message).
		Execute()
	if err != nil {
		log.Printf("pubnub publish failed: %v", err)
		return
	}
	if pnStatus.Error != nil {
		log.Printf("pubnub publish rejected: %v", pnStatus.Error)
	}
}

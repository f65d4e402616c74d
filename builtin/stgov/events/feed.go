// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/ethereum/go-ethereum/event"
)

// Subscription is a subscription to published events.
type Subscription = event.Subscription

// Log is one event emitted by a completed ledger operation.
type Log struct {
	Op    string
	Event any
}

// Buffer collects the events of the running operation. They are published
// only when the operation succeeds.
type Buffer struct {
	op   string
	logs []Log
}

// Reset discards buffered events and starts collecting for op.
func (b *Buffer) Reset(op string) {
	b.op = op
	b.logs = b.logs[:0]
}

func (b *Buffer) Emit(ev any) {
	b.logs = append(b.logs, Log{Op: b.op, Event: ev})
}

// Drain returns the buffered events and empties the buffer.
func (b *Buffer) Drain() []Log {
	out := make([]Log, len(b.logs))
	copy(out, b.logs)
	b.logs = b.logs[:0]
	return out
}

// Feed fans published events out to subscribers.
type Feed struct {
	feed  event.Feed
	scope event.SubscriptionScope
}

// Subscribe delivers every published event to ch. Sends block until ch
// accepts, so subscribers should buffer or drain promptly.
func (f *Feed) Subscribe(ch chan<- Log) Subscription {
	return f.scope.Track(f.feed.Subscribe(ch))
}

func (f *Feed) Publish(logs []Log) {
	for _, l := range logs {
		f.feed.Send(l)
	}
}

// Close unsubscribes every subscriber.
func (f *Feed) Close() {
	f.scope.Close()
}

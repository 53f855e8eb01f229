// Package alert watches decoded Mode S traffic for the well-known
// emergency/priority squawks and notifies a Discord channel when one
// appears, adapted from the subscriber-list pattern the teacher's Discord
// bot uses for its location alerts.
package alert

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adsb1090/decoder/internal/modes"
)

const watchersFile = "emergency-watchers.json"

// Watcher is a Discord channel subscribed to emergency-squawk notifications.
type Watcher struct {
	ChannelID string
	Label     string
}

// Event is a single emergency-squawk sighting, ready to be rendered into a
// Discord notification.
type Event struct {
	Address modes.IcaoAddress
	Squawk  modes.Squawk
	Status  modes.EmergencyPriorityStatus
	Seen    time.Time
}

func (e Event) String() string {
	return fmt.Sprintf("%s squawking %s (%s) at %s", e.Address, e.Squawk, e.Status, e.Seen.UTC().Format(time.RFC3339))
}

// Registry is the persisted, concurrency-safe set of channels to notify.
// It mirrors the teacher's alertLocations global: an RWMutex-guarded slice
// backed by a JSON file in the directory given to NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	watchers []Watcher
	path     string
	log      zerolog.Logger
}

// NewRegistry loads (or initializes) the watcher list from dir/watchersFile.
func NewRegistry(dir string) *Registry {
	r := &Registry{
		path: path.Join(dir, watchersFile),
		log:  log.With().Str("section", "alert").Logger(),
	}
	r.load()
	return r
}

func (r *Registry) load() {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, err := os.ReadFile(r.path)
	if nil != err {
		if errors.Is(err, os.ErrNotExist) {
			r.log.Info().Str("path", r.path).Msg("no watcher save file, proceeding with empty list")
			return
		}
		r.log.Error().Err(err).Str("path", r.path).Msg("failed to read watcher list")
		return
	}
	if err = json.Unmarshal(b, &r.watchers); nil != err {
		r.log.Error().Err(err).Str("path", r.path).Msg("failed to parse watcher list JSON")
	}
}

func (r *Registry) save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, err := json.MarshalIndent(r.watchers, "", "  ")
	if nil != err {
		return fmt.Errorf("alert: marshal watcher list: %w", err)
	}
	if err = os.WriteFile(r.path, b, 0o644); nil != err {
		return fmt.Errorf("alert: save watcher list to %s: %w", r.path, err)
	}
	return nil
}

// Add subscribes channelID under label, rejecting a channelID/label pair
// that is already registered.
func (r *Registry) Add(channelID, label string) error {
	r.mu.Lock()
	for _, w := range r.watchers {
		if w.ChannelID == channelID && w.Label == label {
			r.mu.Unlock()
			return errors.New("alert: channel already has a watcher with this label")
		}
	}
	r.watchers = append(r.watchers, Watcher{ChannelID: channelID, Label: label})
	r.mu.Unlock()
	return r.save()
}

// Remove unsubscribes channelID/label, reporting whether anything was
// removed.
func (r *Registry) Remove(channelID, label string) (bool, error) {
	r.mu.Lock()
	idx := -1
	for i, w := range r.watchers {
		if w.ChannelID == channelID && w.Label == label {
			idx = i
			break
		}
	}
	if idx == -1 {
		r.mu.Unlock()
		return false, nil
	}
	r.watchers = append(r.watchers[:idx], r.watchers[idx+1:]...)
	r.mu.Unlock()
	return true, r.save()
}

// Channels returns a snapshot of the currently subscribed channel IDs.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.watchers))
	seen := map[string]bool{}
	for _, w := range r.watchers {
		if !seen[w.ChannelID] {
			seen[w.ChannelID] = true
			out = append(out, w.ChannelID)
		}
	}
	return out
}

// Notifier sends Events to every channel in a Registry over an already
// authenticated discordgo.Session.
type Notifier struct {
	session  *discordgo.Session
	registry *Registry
	log      zerolog.Logger
}

// NewNotifier wires session to registry. session is expected to already be
// open (discordgo.Session.Open called by the caller); Notifier only sends.
func NewNotifier(session *discordgo.Session, registry *Registry) *Notifier {
	return &Notifier{
		session:  session,
		registry: registry,
		log:      log.With().Str("section", "alert-notifier").Logger(),
	}
}

// Notify renders ev and sends it to every subscribed channel, logging
// (rather than failing) individual per-channel send errors so that one
// dead channel does not suppress delivery to the rest.
func (n *Notifier) Notify(ev Event) {
	msg := formatMessage(ev)
	for _, channelID := range n.registry.Channels() {
		if _, err := n.session.ChannelMessageSend(channelID, msg); nil != err {
			n.log.Error().Err(err).Str("channel", channelID).Msg("failed to deliver emergency notification")
		}
	}
}

func formatMessage(ev Event) string {
	var b strings.Builder
	b.WriteString(":rotating_light: emergency squawk detected: ")
	b.WriteString(ev.String())
	return b.String()
}

// Watch maps squawk to its EmergencyPriorityStatus and, when that is an
// active emergency/priority status, notifies n with an Event for address.
// It does not inspect frames itself: the caller extracts the squawk and
// address from whatever frame carried them.
func Watch(n *Notifier, address modes.IcaoAddress, squawk modes.Squawk, seen time.Time) {
	status := modes.EmergencyPriorityStatusFromSquawk(squawk)
	if status == modes.EmergencyNone {
		return
	}
	n.Notify(Event{Address: address, Squawk: squawk, Status: status, Seen: seen})
}

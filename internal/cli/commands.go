// Package cli implements the interactive console for driving a gatefield
// session by hand: connect, log in, pick a character and act in game.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/connector"
	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/protocol"
	"github.com/gatefield/gatefield/internal/runner"
)

const (
	subscriberName = "cli"
	commandTimeout = 5 * time.Second
)

// ErrQuit is returned by Run when the user asked to exit.
var ErrQuit = errors.New("console quit")

// CLI provides an interactive command-line interface.
type CLI struct {
	loop *runner.Loop
	bus  *events.EventBus
	in   io.Reader

	mu  sync.Mutex
	out io.Writer
}

// NewCLI creates a console reading commands from in and printing to out.
func NewCLI(loop *runner.Loop, bus *events.EventBus, in io.Reader, out io.Writer) *CLI {
	c := &CLI{
		loop: loop,
		bus:  bus,
		in:   in,
		out:  out,
	}
	c.subscribe()
	return c
}

// Run reads commands until end of input or ctx is done, or returns ErrQuit
// once the user types quit.
func (c *CLI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.bus.Remove(subscriberName)

	c.printf("\ngatefield console ready. Type 'help' for available commands.\n")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		c.printf("gatefield> ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			parts := strings.Fields(line)
			if len(parts) == 0 {
				continue
			}
			err := c.execute(ctx, strings.ToLower(parts[0]), parts[1:])
			if errors.Is(err, ErrQuit) {
				return err
			}
			if err != nil {
				c.printf("Error: %v\n", err)
			}
		}
	}
}

// execute processes a single console command.
func (c *CLI) execute(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help", "h", "?":
		c.printHelp()
	case "status", "s":
		c.printStatus()
	case "connect":
		return c.do(ctx, func(ctx context.Context, conn *connector.Connector) error {
			return conn.ConnectToGate(ctx)
		})
	case "login":
		if len(args) < 2 {
			return fmt.Errorf("usage: login <username> <password>")
		}
		return c.do(ctx, func(ctx context.Context, conn *connector.Connector) error {
			return conn.Login(ctx, args[0], args[1])
		})
	case "chars":
		return c.do(ctx, func(ctx context.Context, conn *connector.Connector) error {
			return conn.RequestCharList(ctx)
		})
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("usage: create <name> <job>")
		}
		job, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid job: %s", args[1])
		}
		return c.do(ctx, func(ctx context.Context, conn *connector.Connector) error {
			return conn.CreateCharacter(ctx, args[0], int32(job))
		})
	case "select":
		id, err := parseUintArg(args, "select <char_id>", 32)
		if err != nil {
			return err
		}
		return c.do(ctx, func(ctx context.Context, conn *connector.Connector) error {
			return conn.SelectCharacter(ctx, uint32(id))
		})
	case "move":
		pos, err := parseVec3(args)
		if err != nil {
			return err
		}
		return c.do(ctx, func(ctx context.Context, conn *connector.Connector) error {
			return conn.Move(ctx, pos)
		})
	case "attack":
		target, err := parseUintArg(args, "attack <entity_id>", 64)
		if err != nil {
			return err
		}
		return c.do(ctx, func(ctx context.Context, conn *connector.Connector) error {
			return conn.Attack(ctx, target)
		})
	case "say":
		if len(args) == 0 {
			return fmt.Errorf("usage: say <text>")
		}
		text := strings.Join(args, " ")
		return c.do(ctx, func(ctx context.Context, conn *connector.Connector) error {
			return conn.Chat(ctx, connector.ChatNormal, text)
		})
	case "whisper", "w":
		if len(args) < 2 {
			return fmt.Errorf("usage: whisper <to> <text>")
		}
		text := strings.Join(args[1:], " ")
		return c.do(ctx, func(ctx context.Context, conn *connector.Connector) error {
			return conn.Whisper(ctx, args[0], text)
		})
	case "kinds":
		return c.printKinds(args)
	case "disconnect":
		return c.do(ctx, func(ctx context.Context, conn *connector.Connector) error {
			conn.Disconnect(ctx, "console")
			return nil
		})
	case "quit", "exit", "q":
		c.printf("Shutting down gatefield...\n")
		return ErrQuit
	default:
		c.printf("Unknown command: '%s'. Type 'help' for available commands.\n", cmd)
	}
	return nil
}

// do runs fn on the session loop and waits for it.
func (c *CLI) do(ctx context.Context, fn runner.Command) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	return c.loop.Exec(ctx, fn)
}

func (c *CLI) printHelp() {
	c.printf(`
Commands:
  status                  Show connection state and session
  connect                 Connect to the gate and follow the route
  login <user> <pass>     Log in on the field server
  chars                   Request the character list
  create <name> <job>     Create a character
  select <id>             Enter the game with a character
  move <x> <y> <z>        Move to a position
  attack <entity_id>      Attack an entity
  say <text>              Chat on the normal channel
  whisper <to> <text>     Send a private message
  kinds [group]           List message kinds
  disconnect              Close the session
  quit                    Exit gatefield

`)
}

func (c *CLI) printStatus() {
	snap := c.loop.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "\n  State:       %s\n", snap.State)
	fmt.Fprintf(c.out, "  Account:     %d\n", snap.Session.AccountID)
	fmt.Fprintf(c.out, "  Entity:      %d\n", snap.Session.EntityID)
	fmt.Fprintf(c.out, "  Zone:        %d\n", snap.Session.ZoneID)
	fmt.Fprintf(c.out, "  Channel:     %d\n", snap.Session.ChannelID)
	fmt.Fprintf(c.out, "  Heartbeats:  %d\n", snap.HeartbeatSeq)
	for role, depth := range snap.QueueDepths {
		fmt.Fprintf(c.out, "  Queue %-6s %d\n", role+":", depth)
	}
	fmt.Fprintln(c.out)
}

func (c *CLI) printKinds(args []string) error {
	var (
		group    protocol.Group
		filtered bool
	)
	if len(args) > 0 {
		g, ok := protocol.ParseGroup(strings.ToLower(args[0]))
		if !ok {
			return fmt.Errorf("unknown group: %s", args[0])
		}
		group, filtered = g, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tw := tablewriter.NewWriter(c.out)
	tw.SetHeader([]string{"Code", "Name", "Group", "Direction"})
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)

	for _, k := range protocol.Kinds() {
		if filtered && k.Group() != group {
			continue
		}
		tw.Append([]string{strconv.Itoa(int(k)), k.String(), k.Group().String(), k.Direction().String()})
	}
	tw.Render()
	return nil
}

func (c *CLI) printCharacters(chars []protocol.CharSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(chars) == 0 {
		fmt.Fprintln(c.out, "\nNo characters. Use 'create <name> <job>'.")
		return
	}

	fmt.Fprintln(c.out)
	tw := tablewriter.NewWriter(c.out)
	tw.SetHeader([]string{"ID", "Name", "Level", "Job"})
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)
	for _, ch := range chars {
		tw.Append([]string{
			fmt.Sprintf("%d", ch.CharID),
			ch.Name,
			fmt.Sprintf("%d", ch.Level),
			fmt.Sprintf("%d", ch.Job),
		})
	}
	tw.Render()
}

// subscribe prints the events a console user wants to see as they arrive.
func (c *CLI) subscribe() {
	c.bus.Subscribe(events.EventStateChanged, subscriberName, func(ctx context.Context, ev events.Event) error {
		if p, ok := ev.Payload.(events.StateChangedPayload); ok {
			c.printf("\n[state] %s -> %s\n", p.From, p.To)
		}
		return nil
	})
	c.bus.Subscribe(events.EventConnectError, subscriberName, func(ctx context.Context, ev events.Event) error {
		if p, ok := ev.Payload.(events.ConnectErrorPayload); ok {
			c.printf("\n[error] %s: %v\n", p.Stage, p.Err)
		}
		return nil
	})
	c.bus.Subscribe(events.EventDisconnected, subscriberName, func(ctx context.Context, ev events.Event) error {
		if p, ok := ev.Payload.(events.DisconnectedPayload); ok {
			c.printf("\n[disconnected] %s\n", p.Reason)
		}
		return nil
	})
	c.bus.Subscribe(events.EventEnteredGame, subscriberName, func(ctx context.Context, ev events.Event) error {
		if s, ok := ev.Payload.(events.Session); ok {
			c.printf("\n[game] entity %d in zone %d\n", s.EntityID, s.ZoneID)
		}
		return nil
	})

	events.OnMessage(c.bus, subscriberName, func(ctx context.Context, m *protocol.LoginResult) error {
		c.printf("\n[login] %s\n", m.Result)
		return nil
	})
	events.OnMessage(c.bus, subscriberName, func(ctx context.Context, m *protocol.CharListResp) error {
		c.printCharacters(m.Characters)
		return nil
	})
	events.OnMessage(c.bus, subscriberName, func(ctx context.Context, m *protocol.CharCreateResult) error {
		if m.Result != 0 {
			c.printf("\n[create] failed with code %d\n", m.Result)
			return nil
		}
		c.printf("\n[create] character %d created\n", m.CharID)
		return nil
	})
	events.OnMessage(c.bus, subscriberName, func(ctx context.Context, m *protocol.ChatBroadcast) error {
		c.printf("\n<%s> %s\n", m.Name, m.Text)
		return nil
	})
	events.OnMessage(c.bus, subscriberName, func(ctx context.Context, m *protocol.WhisperRecv) error {
		c.printf("\n[from %s] %s\n", m.Sender, m.Text)
		return nil
	})
	events.OnMessage(c.bus, subscriberName, func(ctx context.Context, m *protocol.AttackResult) error {
		c.printf("\n[combat] %d hit %d for %d (%d/%d)\n", m.Attacker, m.Target, m.Damage, m.TargetHP, m.TargetMaxHP)
		return nil
	})
}

func (c *CLI) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		log.Debug().Err(err).Msg("console write failed")
	}
}

func parseUintArg(args []string, usage string, bits int) (uint64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	v, err := strconv.ParseUint(args[0], 10, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %s", args[0])
	}
	return v, nil
}

func parseVec3(args []string) (protocol.Vec3, error) {
	if len(args) < 3 {
		return protocol.Vec3{}, fmt.Errorf("usage: move <x> <y> <z>")
	}
	var xyz [3]float32
	for i := range xyz {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return protocol.Vec3{}, fmt.Errorf("invalid coordinate: %s", args[i])
		}
		xyz[i] = float32(f)
	}
	return protocol.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

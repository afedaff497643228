package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/acikkaynak/reliefhub-go/centers"
	"github.com/acikkaynak/reliefhub-go/hubs"
	"github.com/acikkaynak/reliefhub-go/mapview"
	"github.com/acikkaynak/reliefhub-go/pkg/config"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/store"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var errUsage = errors.New("usage: centers list|register|directions [flags]")

// Drives the relief centers screen from the command line:
//
//	centers list
//	centers register -name "Central Camp" -email camp@example.org -phone 9876543210 \
//	    -location Chennai -areas "Adyar, Velachery" -aid Food,Water
//	centers directions -id <hub id> -platform android
func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.Logger().Fatal("centers command failed", zap.Error(err))
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	cmd := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	platform := fs.String("platform", string(mapview.PlatformWeb), "web, android or ios")
	name := fs.String("name", "", "hub name")
	email := fs.String("email", "", "contact email")
	phone := fs.String("phone", "", "contact phone")
	location := fs.String("location", "", "address to geocode")
	areas := fs.String("areas", "", "comma separated areas covered")
	aid := fs.String("aid", "", "comma separated aid types")
	id := fs.String("id", "", "hub id")
	_ = fs.Parse(args[1:])

	opener := mapview.OpenerFunc(func(link string) error {
		fmt.Println(link)
		return nil
	})
	screen, err := centers.NewFromConfig(cfg, opener, mapview.Platform(*platform))
	if err != nil {
		return fmt.Errorf("could not build centers screen: %w", err)
	}
	defer screen.Unmount()

	ctx := context.Background()
	if err := screen.Mount(ctx); err != nil {
		return fmt.Errorf("could not load relief hubs: %w", err)
	}

	switch cmd {
	case "list":
		return printJSON(screen.View())
	case "register":
		screen.SwitchMode(store.ModeRegister)
		hub, err := screen.SubmitDraft(ctx, hubs.Draft{
			HubName:      *name,
			Email:        *email,
			Phone:        *phone,
			Location:     *location,
			AreasCovered: *areas,
			AidTypes:     parseAidTypes(*aid),
		})
		if err != nil {
			return fmt.Errorf("could not register relief hub: %w", err)
		}
		return printJSON(hub)
	case "directions":
		screen.Select(*id)
		if err := screen.OpenDirections(); err != nil {
			return fmt.Errorf("could not open directions: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

// parseAidTypes selects each known aid type once, however often it is repeated.
func parseAidTypes(raw string) map[hubs.AidType]bool {
	selected := map[hubs.AidType]bool{}
	for _, part := range strings.Split(raw, ",") {
		if t, ok := hubs.ParseAidType(part); ok {
			selected[t] = true
		}
	}
	return selected
}

func printJSON(v interface{}) error {
	out, err := jsoniter.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

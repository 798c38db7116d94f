// Command authctl runs operator tasks against the auth server's store.
//
//	authctl adduser [-email a@example.com] [server flags]
//
// Configuration is loaded exactly as the server loads it (.env, -c JSON file,
// environment, flags).
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/admin"
	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: authctl adduser [-email address]")
}

func main() {

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "adduser":
		cfg := config.LoadConfig()
		logger := logging.NewJSONLogger(os.Stderr, "error")

		app, err := server.NewApp(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer app.Close()

		email := flagx.LookupString(os.Args[2:], "email", "e")
		t := admin.Terminal{In: bufio.NewReader(os.Stdin), Fd: int(os.Stdin.Fd()), Out: os.Stdout}

		if _, err := admin.AddUser(ctx, app.UserService(), email, t); err != nil {
			app.Close()
			log.Fatalf("adduser: %v", err)
		}

	case "help", "-h", "--help":
		usage()

	default:
		usage()
		os.Exit(2)
	}
}

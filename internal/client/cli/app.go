package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/addrkeeper/internal/client/client"
	"github.com/dmitrijs2005/addrkeeper/internal/client/config"
	"github.com/dmitrijs2005/addrkeeper/internal/shared"
)

// apiClient is the part of client.HTTPClient the commands use.
type apiClient interface {
	Signup(ctx context.Context, req shared.SignupCustomerRequest) (*shared.StatusResponse, error)
	Login(ctx context.Context, email, password string) (*shared.LoginResponse, error)
	Logout(ctx context.Context) (*shared.LogoutResponse, error)
	UpdateProfile(ctx context.Context, firstName, lastName string) (*shared.UpdateCustomerResponse, error)
	UpdatePassword(ctx context.Context, oldPassword, newPassword string) (*shared.StatusResponse, error)
	SaveAddress(ctx context.Context, req shared.SaveAddressRequest) (*shared.StatusResponse, error)
	ListAddresses(ctx context.Context) ([]shared.Address, error)
	DeleteAddress(ctx context.Context, addressID string) (*shared.StatusResponse, error)
	ListStates(ctx context.Context) ([]shared.State, error)
	Token() string
}

type sessionClient interface {
	Introspect(ctx context.Context, token string) (*client.SessionInfo, error)
	Close() error
}

type App struct {
	config   *config.Config
	api      apiClient
	sessions sessionClient
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	sc, err := client.NewGRPCClient(c.ServerGRPCAddr)
	if err != nil {
		return nil, err
	}

	return &App{
		config:   c,
		api:      client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout),
		sessions: sc,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run blocks in the REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.sessions.Close()

	fmt.Fprintln(a.out, "Welcome to addrkeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

func (a *App) getStatus() string {
	if a.userName == "" || !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

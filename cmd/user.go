package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	stockledger "github.com/jwen/stockledger"
)

type userCmd struct {
	add   string
	del   string
	id    string
	phone string
	email string
}

func (*userCmd) Name() string     { return "user" }
func (*userCmd) Synopsis() string { return "add, list or delete ledger users" }
func (*userCmd) Usage() string {
	return `stk user [-add <name> [-id <id>] [-phone <phone>] [-email <email>]] [-del <id>]

  Without flags, lists all users. -add registers a new user (the id is
  generated unless -id is given), -del removes one. Deleting a user keeps
  their trades; the owner column just stops resolving to a name.
`
}

func (c *userCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Name of the user to add.")
	f.StringVar(&c.del, "del", "", "Id of the user to delete.")
	f.StringVar(&c.id, "id", "", "Explicit id for -add, e.g. a short handle.")
	f.StringVar(&c.phone, "phone", "", "Optional phone for -add.")
	f.StringVar(&c.email, "email", "", "Optional email for -add.")
}

func (c *userCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.add != "" && c.del != "" {
		fmt.Fprintln(os.Stderr, "Error: -add and -del flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	s, closer, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer closer()

	switch {
	case c.add != "":
		u := stockledger.NewUser(c.add)
		if c.id != "" {
			u.ID = c.id
		}
		u.Phone = c.phone
		u.Email = c.email
		if err := u.Validate(); err != nil {
			return fail(err)
		}
		if err := s.AddUser(u); err != nil {
			return fail(err)
		}
		fmt.Printf("Added user %s (id %s)\n", u.Name, u.ID)

	case c.del != "":
		if err := s.DeleteUser(c.del); err != nil {
			return fail(err)
		}
		fmt.Printf("Deleted user %s\n", c.del)

	default:
		users, err := s.ListUsers()
		if err != nil {
			return fail(err)
		}
		if len(users) == 0 {
			fmt.Println("No users yet. Add one with: stk user -add <name>")
			return subcommands.ExitSuccess
		}
		for _, u := range users {
			line := fmt.Sprintf("%s  %s", u.ID, u.Name)
			if u.Phone != "" {
				line += "  " + u.Phone
			}
			if u.Email != "" {
				line += "  " + u.Email
			}
			fmt.Println(line)
		}
	}
	return subcommands.ExitSuccess
}

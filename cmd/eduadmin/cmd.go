package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yungbote/eduadmin/internal/api"
	"github.com/yungbote/eduadmin/internal/cascade"
	"github.com/yungbote/eduadmin/internal/config"
	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/platform/logger"
	"github.com/yungbote/eduadmin/internal/render"
	"github.com/yungbote/eduadmin/internal/session"
	"github.com/yungbote/eduadmin/internal/state"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	session *session.Session
	store   *state.Store
	log     *logger.Logger
	out     io.Writer
	stdinFd int
}

func newCommandLine(cfg *config.Config, log *logger.Logger, tokens session.TokenStore, out io.Writer) (*commandLine, error) {
	var sess *session.Session
	client, err := api.New(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout.Duration,
		Tokens: api.TokenFunc(func() string {
			if sess == nil {
				return ""
			}
			return sess.Token()
		}),
		Log: log,
	})
	if err != nil {
		return nil, err
	}
	sess = session.New(client, tokens, log)
	return &commandLine{
		session: sess,
		store:   state.NewStore(client, log),
		log:     log,
		out:     out,
		stdinFd: int(os.Stdin.Fd()),
	}, nil
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -mobile MOBILE                    - request an OTP")
	fmt.Fprintln(cli.out, "  verify -mobile MOBILE -otp OTP          - sign in with the OTP")
	fmt.Fprintln(cli.out, "  admin-login -mobile MOBILE -otp OTP     - sign in as super admin")
	fmt.Fprintln(cli.out, "  logout                                  - forget the stored token")
	fmt.Fprintln(cli.out, "  whoami                                  - show the session")
	fmt.Fprintln(cli.out, "  levels|classes|subjects|chapters|topics list|get|create|update|delete [flags]")
	fmt.Fprintln(cli.out, "  users list|create [flags]")
	fmt.Fprintln(cli.out, "  progress list|create [flags]")
	fmt.Fprintln(cli.out, "  profiles list|create [flags]")
	fmt.Fprintln(cli.out, "  browse [-level ID [-class ID [-subject ID [-chapter ID]]]]")
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

func required(fs *flag.FlagSet, values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			fs.Usage()
			return errHelp
		}
	}
	return nil
}

func (cli *commandLine) println(s string) { fmt.Fprintln(cli.out, s) }

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	rest := args[2:]

	switch args[1] {
	case "login":
		return cli.login(ctx, rest)
	case "verify":
		return cli.verify(ctx, rest, false)
	case "admin-login":
		return cli.verify(ctx, rest, true)
	case "logout":
		if err := cli.session.Logout(ctx); err != nil {
			return err
		}
		cli.println(render.Success("Signed out."))
		return nil
	case "whoami":
		cli.println(render.Session(cli.session.State()))
		return nil
	case "levels":
		return runContent(ctx, cli, levelsCmd(cli.store), rest)
	case "classes":
		return runContent(ctx, cli, classesCmd(cli.store), rest)
	case "subjects":
		return runContent(ctx, cli, subjectsCmd(cli.store), rest)
	case "chapters":
		return runContent(ctx, cli, chaptersCmd(cli.store), rest)
	case "topics":
		return runContent(ctx, cli, topicsCmd(cli.store), rest)
	case "users":
		return cli.users(ctx, rest)
	case "progress":
		return cli.progress(ctx, rest)
	case "profiles":
		return cli.profiles(ctx, rest)
	case "browse":
		return cli.browse(ctx, rest)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	fs := cli.flagSet("login")
	mobile := fs.String("mobile", "", "Mobile number the OTP is sent to.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := required(fs, *mobile); err != nil {
		return err
	}
	if err := cli.session.Login(ctx, *mobile); err != nil {
		return err
	}
	cli.println(render.Success("OTP sent to " + strings.TrimSpace(*mobile) + "."))
	return nil
}

func (cli *commandLine) verify(ctx context.Context, args []string, superAdmin bool) error {
	name := "verify"
	if superAdmin {
		name = "admin-login"
	}
	fs := cli.flagSet(name)
	mobile := fs.String("mobile", "", "Mobile number the OTP was sent to.")
	otp := fs.String("otp", "", "The one-time password.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := required(fs, *mobile, *otp); err != nil {
		return err
	}
	var err error
	if superAdmin {
		_, err = cli.session.SuperAdminLogin(ctx, *mobile, *otp)
	} else {
		_, err = cli.session.VerifyOTP(ctx, *mobile, *otp)
	}
	if err != nil {
		return err
	}
	cli.println(render.Success("Signed in."))
	return nil
}

func (cli *commandLine) users(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.println("Usage: users list | users create -username NAME -email EMAIL")
		return errHelp
	}
	switch args[0] {
	case "list":
		items, err := cli.store.Users.FetchAll(ctx, state.ListFilter{})
		if err != nil {
			return err
		}
		cli.println(render.Users(items))
		return nil
	case "create":
		fs := cli.flagSet("users create")
		username := fs.String("username", "", "The new user's username. The password will be prompted next.")
		email := fs.String("email", "", "The new user's email.")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if err := required(fs, *username, *email); err != nil {
			return err
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(cli.stdinFd)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			fs.Usage()
			return errHelp
		}
		created, err := cli.store.Users.Create(ctx, domain.User{Username: *username, Email: *email, Password: string(pwd)})
		if err != nil {
			return err
		}
		cli.println(render.Success("Created user " + created.Username + "."))
		items, err := cli.store.Users.FetchAll(ctx, state.ListFilter{})
		if err != nil {
			return err
		}
		cli.println(render.Users(items))
		return nil
	default:
		cli.println("Usage: users list | users create -username NAME -email EMAIL")
		return errHelp
	}
}

func (cli *commandLine) progress(ctx context.Context, args []string) error {
	usage := "Usage: progress list | progress create -user ID (-chapter ID | -topic ID) -progress VALUE"
	if len(args) == 0 {
		cli.println(usage)
		return errHelp
	}
	switch args[0] {
	case "list":
		items, err := cli.store.Progress.FetchAll(ctx, state.ListFilter{})
		if err != nil {
			return err
		}
		cli.println(render.Progress(items))
		return nil
	case "create":
		fs := cli.flagSet("progress create")
		user := fs.String("user", "", "User id.")
		chapter := fs.String("chapter", "", "Chapter id.")
		topic := fs.String("topic", "", "Topic id.")
		value := fs.String("progress", "", "Progress value, e.g. 50%.")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if err := required(fs, *user); err != nil {
			return err
		}
		_, err := cli.store.Progress.Create(ctx, domain.UserProgress{
			UserID:    *user,
			ChapterID: *chapter,
			TopicID:   *topic,
			Progress:  *value,
		})
		if err != nil {
			return err
		}
		cli.println(render.Success("Recorded progress."))
		items, err := cli.store.Progress.FetchAll(ctx, state.ListFilter{})
		if err != nil {
			return err
		}
		cli.println(render.Progress(items))
		return nil
	default:
		cli.println(usage)
		return errHelp
	}
}

func (cli *commandLine) profiles(ctx context.Context, args []string) error {
	usage := "Usage: profiles list | profiles create -name NAME [-email EMAIL] [-user ID]"
	if len(args) == 0 {
		cli.println(usage)
		return errHelp
	}
	switch args[0] {
	case "list":
		items, err := cli.store.Profiles.FetchAll(ctx, state.ListFilter{})
		if err != nil {
			return err
		}
		cli.println(render.Profiles(items))
		return nil
	case "create":
		fs := cli.flagSet("profiles create")
		name := fs.String("name", "", "Display name.")
		email := fs.String("email", "", "Contact email.")
		user := fs.String("user", "", "User id the profile belongs to.")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if err := required(fs, *name); err != nil {
			return err
		}
		created, err := cli.store.Profiles.Create(ctx, domain.Profile{Name: *name, Email: *email, UserID: *user})
		if err != nil {
			return err
		}
		cli.println(render.Success("Created profile " + created.Name + "."))
		items, err := cli.store.Profiles.FetchAll(ctx, state.ListFilter{})
		if err != nil {
			return err
		}
		cli.println(render.Profiles(items))
		return nil
	default:
		cli.println(usage)
		return errHelp
	}
}

func (cli *commandLine) browse(ctx context.Context, args []string) error {
	fs := cli.flagSet("browse")
	level := fs.String("level", "", "Education level id.")
	class := fs.String("class", "", "Class id, inside -level.")
	subject := fs.String("subject", "", "Subject id, inside -class.")
	chapter := fs.String("chapter", "", "Chapter id, inside -subject.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ctl := cascade.New(cli.store, cli.log)
	ctl.Mount(ctx)
	if err := ctl.Wait(); err != nil {
		return err
	}
	cli.println(render.Title("Education levels"))
	cli.println(render.Levels(cli.store.Levels.Snapshot().Items))

	steps := []struct {
		id     string
		sel    func(context.Context, string)
		kind   domain.Level
		title  string
		render func() string
	}{
		{*level, ctl.SelectLevel, domain.LevelClass, "Classes", func() string { return render.Classes(cli.store.Classes.Snapshot().Items) }},
		{*class, ctl.SelectClass, domain.LevelSubject, "Subjects", func() string { return render.Subjects(cli.store.Subjects.Snapshot().Items) }},
		{*subject, ctl.SelectSubject, domain.LevelChapter, "Chapters", func() string { return render.Chapters(cli.store.Chapters.Snapshot().Items) }},
		{*chapter, ctl.SelectChapter, domain.LevelTopic, "Topics", func() string { return render.Topics(cli.store.Topics.Snapshot().Items) }},
	}
	for _, st := range steps {
		if strings.TrimSpace(st.id) == "" {
			break
		}
		st.sel(ctx, st.id)
		if err := ctl.Wait(); err != nil {
			return err
		}
		cli.println("")
		cli.println(render.Breadcrumbs(ctl.Chain()))
		cli.println(render.Title(st.title))
		cli.println(st.render())
		cli.println(render.Hint("New: " + ctl.CreateLink(st.kind)))
	}
	return nil
}

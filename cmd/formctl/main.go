// Command formctl edits form templates against a running Form Template API
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"form-template-api/internal/builder"
	"form-template-api/internal/client"
	"form-template-api/internal/domain"
	"form-template-api/internal/dto"
)

const usage = `usage: formctl <command> [flags]

commands:
  list      list templates
  show      show a template and its elements
  import    create a template from a YAML document
  add       append an element to a template
  rename    change the label of an element
  delete    delete an element
  reorder   set the element order
  move      move an element onto the position of another

environment:
  FORM_API_URL    API base URL (default http://localhost:8080/api)
  FORM_API_TOKEN  bearer token
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	baseURL := os.Getenv("FORM_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api"
	}
	api := client.NewFormAPIClient(baseURL, os.Getenv("FORM_API_TOKEN"), 10*time.Second)

	logger := zap.NewNop()
	if os.Getenv("FORMCTL_DEBUG") != "" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	cli := &cli{
		api:     api,
		builder: builder.New(api, builder.ConfirmFunc(askConfirm), logger),
	}

	ctx := context.Background()
	if err := cli.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			fmt.Fprintln(os.Stderr, "not found:", apiErr.Message)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type cli struct {
	api     *client.FormAPIClient
	builder *builder.Builder
}

func (c *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "list":
		return c.list(ctx, args)
	case "show":
		return c.show(ctx, args)
	case "import":
		return c.importTemplate(ctx, args)
	case "add":
		return c.add(ctx, args)
	case "rename":
		return c.rename(ctx, args)
	case "delete":
		return c.delete(ctx, args)
	case "reorder":
		return c.reorder(ctx, args)
	case "move":
		return c.move(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 20, "page size")
	_ = fs.Parse(args)

	result, err := c.api.ListTemplates(ctx, *page, *limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tELEMENTS\tUPDATED")
	for _, t := range result.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", t.ID, t.Name, t.ElementCount, t.UpdatedAt.Format(time.RFC3339))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if result.HasMore {
		fmt.Printf("(%d of %d, next: -page %d)\n", len(result.Items), result.Total, *page+1)
	}
	return nil
}

func (c *cli) show(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	templateID := fs.String("template", "", "template id")
	_ = fs.Parse(args)

	if err := c.load(ctx, *templateID); err != nil {
		return err
	}
	c.printTemplate()
	return nil
}

func (c *cli) importTemplate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "YAML document, - for stdin")
	_ = fs.Parse(args)

	var (
		document []byte
		err      error
	)
	switch *file {
	case "":
		return errors.New("-file is required")
	case "-":
		document, err = io.ReadAll(os.Stdin)
	default:
		document, err = os.ReadFile(*file)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", *file, err)
	}

	created, err := c.api.ImportTemplate(ctx, document)
	if err != nil {
		return err
	}
	fmt.Printf("imported %q as %s with %d elements\n", created.Name, created.ID, created.ElementCount)
	return nil
}

func (c *cli) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	templateID := fs.String("template", "", "template id")
	elementType := fs.String("type", "", "element type")
	label := fs.String("label", "", "label, generated when empty")
	required := fs.Bool("required", false, "mark the element required")
	_ = fs.Parse(args)

	if err := c.load(ctx, *templateID); err != nil {
		return err
	}

	t := domain.ElementType(*elementType)
	if *elementType == "" {
		choice, err := askElementType()
		if err != nil {
			return err
		}
		t = choice
	}

	created, err := c.builder.AddElement(ctx, t)
	if err != nil {
		return err
	}

	if *label != "" || *required {
		patch := &dto.UpdateFormElementRequest{}
		if *label != "" {
			patch.Label = label
		}
		if *required {
			patch.Required = required
		}
		if created, err = c.builder.EditElement(ctx, created.ID, patch); err != nil {
			return err
		}
	}

	fmt.Printf("added %s %q (%s)\n", created.Type, created.Label, created.ID)
	return nil
}

func (c *cli) rename(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rename", flag.ExitOnError)
	templateID := fs.String("template", "", "template id")
	elementID := fs.String("element", "", "element id")
	label := fs.String("label", "", "new label")
	_ = fs.Parse(args)

	if err := c.load(ctx, *templateID); err != nil {
		return err
	}
	id, err := parseID("element", *elementID)
	if err != nil {
		return err
	}

	updated, err := c.builder.EditElement(ctx, id, &dto.UpdateFormElementRequest{Label: label})
	if err != nil {
		return err
	}
	fmt.Printf("renamed %s to %q\n", updated.ID, updated.Label)
	return nil
}

func (c *cli) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	templateID := fs.String("template", "", "template id")
	elementID := fs.String("element", "", "element id")
	yes := fs.Bool("yes", false, "skip confirmation")
	_ = fs.Parse(args)

	if *yes {
		c.builder = builder.New(c.api, builder.ConfirmFunc(func(string) (bool, error) { return true, nil }), nil)
	}
	if err := c.load(ctx, *templateID); err != nil {
		return err
	}
	id, err := parseID("element", *elementID)
	if err != nil {
		return err
	}

	deleted, err := c.builder.DeleteElement(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Println("cancelled")
		return nil
	}
	fmt.Println("deleted", id)
	return nil
}

func (c *cli) reorder(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reorder", flag.ExitOnError)
	templateID := fs.String("template", "", "template id")
	order := fs.String("ids", "", "comma separated element ids in the new order")
	_ = fs.Parse(args)

	if err := c.load(ctx, *templateID); err != nil {
		return err
	}

	var ids []uuid.UUID
	for _, raw := range strings.Split(*order, ",") {
		id, err := parseID("element", strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	moves := builder.Moves(c.builder.IDs(), ids)
	if err := c.builder.Reorder(ctx, ids); err != nil {
		return err
	}
	fmt.Printf("%d elements moved\n", len(moves))
	c.printTemplate()
	return nil
}

func (c *cli) move(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("move", flag.ExitOnError)
	templateID := fs.String("template", "", "template id")
	elementID := fs.String("element", "", "element to move")
	overID := fs.String("over", "", "element whose position it takes")
	_ = fs.Parse(args)

	if err := c.load(ctx, *templateID); err != nil {
		return err
	}
	active, err := parseID("element", *elementID)
	if err != nil {
		return err
	}
	over, err := parseID("over", *overID)
	if err != nil {
		return err
	}

	if err := c.builder.Drop(ctx, active, over); err != nil {
		return err
	}
	c.printTemplate()
	return nil
}

func (c *cli) load(ctx context.Context, raw string) error {
	id, err := parseID("template", raw)
	if err != nil {
		return err
	}
	return c.builder.Load(ctx, id)
}

func (c *cli) printTemplate() {
	tmpl := c.builder.Template()
	fmt.Printf("%s  %s\n", tmpl.ID, tmpl.Name)
	if tmpl.Description != "" {
		fmt.Println(tmpl.Description)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tTYPE\tLABEL\tREQUIRED")
	for _, el := range c.builder.Elements() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", el.Order, el.ID, el.Type, el.Label, el.Required)
	}
	_ = w.Flush()
}

func parseID(name, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, fmt.Errorf("-%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q", name, raw)
	}
	return id, nil
}

func askConfirm(message string) (bool, error) {
	ok := false
	prompt := &survey.Confirm{Message: message, Default: false}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func askElementType() (domain.ElementType, error) {
	types := domain.AllElementTypes()
	options := make([]string, len(types))
	for i, t := range types {
		options[i] = string(t)
	}

	var choice string
	prompt := &survey.Select{
		Message: "Element type:",
		Options: options,
		Description: func(value string, _ int) string {
			return domain.ElementType(value).DisplayName()
		},
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return domain.ElementType(choice), nil
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/phrazzld/minisocial/internal/config"
	"github.com/phrazzld/minisocial/internal/domain"
	"github.com/phrazzld/minisocial/internal/platform/logger"
	"github.com/phrazzld/minisocial/internal/platform/render"
	"github.com/phrazzld/minisocial/internal/service"
	"github.com/urfave/cli/v2"
)

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "play a scripted session against a fresh network and print the results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Value: config.DefaultNetworkName,
				Usage: "name of the social network",
			},
			&cli.StringFlag{
				Name:  "image",
				Usage: "PNG, JPEG or GIF file to publish as a picture post",
			},
			&cli.IntFlag{
				Name:  "width",
				Value: render.DefaultWidth,
				Usage: "width in characters of rendered pictures",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "level of the log records written to stderr",
			},
		},
		Action: func(c *cli.Context) error {
			log := logger.SetupWithWriter(config.ServerConfig{LogLevel: c.String("log-level")}, c.App.ErrWriter)

			network, err := newNetwork(c.String("name"), config.DefaultBcryptCost, c.Int("width"), log)
			if err != nil {
				return err
			}
			return runDemo(c.Context, network, c.String("image"), c.App.Writer)
		},
	}
}

// demo walks through the network's features, printing what each step shows.
type demo struct {
	ctx     context.Context
	network *service.SocialNetwork
	out     io.Writer
	err     error
}

// runDemo signs up three users and exercises follows, every post kind,
// likes, comments, the sale life cycle and notifications. Expected failures
// are printed; any other failure stops the run.
func runDemo(ctx context.Context, network *service.SocialNetwork, imagePath string, out io.Writer) error {
	d := &demo{ctx: ctx, network: network, out: out}
	accounts := network.Accounts()
	posts := network.Posts()

	alice := d.signUp("alice", "1234")
	bob := d.signUp("bob", "5678")
	charlie := d.signUp("charlie", "abcd")
	d.expectFailure("duplicate sign-up", func() error {
		_, err := network.SignUp(ctx, "bob", "9999")
		return err
	})
	d.expectFailure("short password", func() error {
		_, err := network.SignUp(ctx, "dave", "12")
		return err
	})
	if d.err != nil {
		return d.err
	}

	d.step(func() error { return accounts.Follow(ctx, alice, bob) })
	d.step(func() error { return accounts.Follow(ctx, charlie, bob) })
	d.expectFailure("follow twice", func() error { return accounts.Follow(ctx, alice, bob) })

	text := d.publish(bob, &domain.TextContent{Body: "Hello, world!"})
	sale := d.publish(bob, domain.NewSaleContent("Bike", 100.0, "TLV"))
	if imagePath != "" {
		picture := d.publish(bob, &domain.ImageContent{Path: imagePath})
		d.step(func() error { return posts.Display(ctx, picture, out) })
	}
	if d.err != nil {
		return d.err
	}

	d.step(func() error { return posts.Like(ctx, text, alice) })
	d.step(func() error { return posts.Comment(ctx, sale, charlie, "Is it still available?") })

	d.step(func() error { return posts.Discount(ctx, sale, 10, "5678") })
	d.expectFailure("discount with the wrong password", func() error {
		return posts.Discount(ctx, sale, 10, "0000")
	})
	d.step(func() error { return posts.MarkSold(ctx, sale, "5678") })
	d.expectFailure("sell twice", func() error { return posts.MarkSold(ctx, sale, "5678") })
	d.print(sale.Describe())

	d.step(func() error { return accounts.PrintNotifications(ctx, bob, out) })
	d.step(func() error { return accounts.PrintNotifications(ctx, alice, out) })

	d.step(func() error { return accounts.Unfollow(ctx, charlie, bob) })
	d.step(func() error { return network.LogOut(ctx, "alice") })
	d.expectFailure("follow while logged out", func() error { return accounts.Follow(ctx, alice, charlie) })

	summary, err := network.Summary(ctx)
	if err != nil {
		return err
	}
	d.print(summary)
	return d.err
}

func (d *demo) signUp(name, password string) *domain.User {
	if d.err != nil {
		return nil
	}
	user, err := d.network.SignUp(d.ctx, name, password)
	if err != nil {
		d.err = fmt.Errorf("failed to sign up %s: %w", name, err)
		return nil
	}
	return user
}

func (d *demo) publish(author *domain.User, content domain.PostContent) *domain.Post {
	if d.err != nil {
		return nil
	}
	post, err := d.network.Accounts().PublishPost(d.ctx, author, content)
	if err != nil {
		d.err = fmt.Errorf("failed to publish: %w", err)
		return nil
	}
	d.print(post.Describe())
	return post
}

func (d *demo) step(fn func() error) {
	if d.err != nil {
		return
	}
	d.err = fn()
}

// expectFailure runs fn and prints the error it is expected to return.
func (d *demo) expectFailure(label string, fn func() error) {
	if d.err != nil {
		return
	}
	err := fn()
	if err == nil {
		d.err = fmt.Errorf("%s unexpectedly succeeded", label)
		return
	}
	d.print(fmt.Sprintf("%s rejected: %v\n", label, err))
}

func (d *demo) print(s string) {
	if d.err != nil {
		return
	}
	if _, err := io.WriteString(d.out, s); err != nil {
		d.err = err
	}
}

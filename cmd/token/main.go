package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"cosmoport/config"
	"cosmoport/pkg/jwt"
)

// Globals 子命令共享的依赖
type Globals struct {
	Mgr *jwt.Manager
	Out io.Writer
}

type CLI struct {
	Issue  IssueCmd  `cmd:"" help:"为操作员签发写接口令牌"`
	Verify VerifyCmd `cmd:"" help:"校验令牌并打印其中的操作员"`

	Config string        `short:"c" type:"path" help:"配置文件路径"`
	TTL    time.Duration `help:"覆盖配置中的令牌有效期"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if len(cfg.Auth.JWTSecret) < 16 {
		return fmt.Errorf("auth.jwt_secret 未配置或长度不足 16 字符")
	}
	if c.TTL > 0 {
		cfg.Auth.TokenTTL = c.TTL
	}

	ctx.Bind(&Globals{Mgr: jwt.NewManager(&cfg.Auth), Out: os.Stdout})
	return nil
}

type IssueCmd struct {
	Operator string `arg:"" help:"操作员名称"`
}

func (cmd *IssueCmd) Run(g *Globals) error {
	token, err := g.Mgr.GenerateOperatorToken(cmd.Operator)
	if err != nil {
		return fmt.Errorf("签发令牌失败: %w", err)
	}
	fmt.Fprintln(g.Out, token)
	return nil
}

type VerifyCmd struct {
	Token string `arg:"" help:"待校验的令牌"`
}

func (cmd *VerifyCmd) Run(g *Globals) error {
	claims, err := g.Mgr.ParseToken(cmd.Token)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "operator: %s\nexpires:  %s\n", claims.Operator, claims.ExpiresAt.Time.UTC().Format(time.RFC3339))
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("cosmoport-token"),
		kong.Description("Cosmoport 操作员令牌工具"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

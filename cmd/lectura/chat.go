package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/spf13/cobra"

	"github.com/lectura/server/internal/agent/repo"
	"github.com/lectura/server/internal/chat"
	"github.com/lectura/server/internal/mathchat"
	logx "github.com/lectura/server/pkg/logger"
)

func newChatCmd() *cobra.Command {
	var (
		query          string
		offline        bool
		conversationID string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask math questions, one-shot or as a REPL",
		Long: "Answers math questions through layered resolution: local symbolic\n" +
			"computation first, the Gemini collaborator only when local tiers come up\n" +
			"empty. Without --query an interactive session starts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := chat.New(ctx, appCfg.Chat)
			if err != nil {
				return err
			}
			engine := mathchat.NewEngine(client)
			allowRemote := !offline

			sess, err := newChatSession(conversationID)
			if err != nil {
				return err
			}
			defer sess.close()

			if query != "" {
				fmt.Println(sess.ask(ctx, engine, query, allowRemote))
				return nil
			}
			return runREPL(ctx, engine, sess, allowRemote)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "single question to answer, then exit")
	cmd.Flags().BoolVar(&offline, "offline", false, "never contact the remote model")
	cmd.Flags().StringVarP(&conversationID, "conversation", "c", "", "conversation id for Redis-backed history")
	return cmd
}

// chatSession optionally persists turns in Redis so remote tiers see context
// across invocations. Without a conversation id (or Redis) it is a no-op.
type chatSession struct {
	repo     *repo.RedisConversationRepository
	id       string
	maxTurns int
	closeFn  func() error
}

func newChatSession(conversationID string) (*chatSession, error) {
	s := &chatSession{id: conversationID, maxTurns: appCfg.Conversation.MaxTurns}
	if conversationID == "" {
		return s, nil
	}
	if appCfg.Redis.URL == "" {
		logx.Warn().Msg("REDIS_URL not configured, conversation history disabled")
		return s, nil
	}
	ttl, err := time.ParseDuration(appCfg.Conversation.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid CONVERSATION_TTL %q: %w", appCfg.Conversation.TTL, err)
	}
	rdb, err := appCfg.Redis.New()
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	s.repo = repo.NewRedisConversationRepository(rdb, ttl)
	s.closeFn = rdb.Close
	return s, nil
}

func (s *chatSession) ask(ctx context.Context, engine *mathchat.Engine, query string, allowRemote bool) string {
	var history []*schema.Message
	if s.repo != nil {
		var err error
		if history, err = s.repo.RecentMessages(ctx, s.id, s.maxTurns); err != nil {
			logx.Warn().Err(err).Msg("could not load conversation history")
		}
	}
	reply := engine.ResolveConversation(ctx, query, allowRemote, history)
	if s.repo != nil {
		if err := s.repo.AddMessage(ctx, s.id, schema.UserMessage(query)); err != nil {
			logx.Warn().Err(err).Msg("could not persist user message")
		} else if err := s.repo.AddMessage(ctx, s.id, schema.AssistantMessage(reply, nil)); err != nil {
			logx.Warn().Err(err).Msg("could not persist assistant message")
		}
	}
	return reply
}

func (s *chatSession) close() {
	if s.closeFn != nil {
		_ = s.closeFn()
	}
}

func runREPL(ctx context.Context, engine *mathchat.Engine, sess *chatSession, allowRemote bool) error {
	fmt.Println("Math chat. Type a question, or 'quit' to leave.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}
		fmt.Println(sess.ask(ctx, engine, line, allowRemote))
		fmt.Println()
	}
}

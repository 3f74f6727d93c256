package main

import (
	"context"
	"log"

	"github.com/judgegodwins/tetris-duel/api"
	"github.com/judgegodwins/tetris-duel/tokens"
	"github.com/judgegodwins/tetris-duel/util"
	"github.com/redis/go-redis/v9"
)

func main() {
	config, err := util.LoadConfig()

	if err != nil {
		log.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress,
		Password: config.RedisPassword,
		DB:       0,
	})

	// check redis connection status
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal(err)
	}

	maker, err := tokens.NewMaker(config.TokenKind, config.TokenSecret)

	if err != nil {
		log.Fatal(err)
	}

	server := api.NewServer(config, rdb, maker)

	log.Printf("relay listening on :%v", config.Port)
	log.Fatal(server.Start())
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/farmaguardia/segovia/backend/internal/config"
	"github.com/farmaguardia/segovia/backend/internal/report"
)

func main() {
	/**********************************************
	 * Logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * Configuración
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("no se pudo cargar la configuración", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Cliente de correo
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("no se pudo crear el cliente de correo", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	dialCtx, dialCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer dialCancel()
	if err := client.DialWithContext(dialCtx); err != nil {
		logger.Error("no se pudo conectar al servidor de correo", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("no se pudo conectar a rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("no se pudo abrir el canal", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		report.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("no se pudo declarar la cola", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("no se pudo consumir la cola", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("evento recibido", slog.String("message", string(msg.Body)))

				event := report.Event{}
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					logger.Error("no se pudo deserializar el evento", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("no se pudo fijar el remitente", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(cfg.Email.MaintainerAddress); err != nil {
					logger.Error("no se pudo fijar el destinatario", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				switch event.Type {
				case report.EventDirectoryMiss:
					m.Subject(fmt.Sprintf("Guardias %s - entradas sin ficha", event.LocationID))
					m.SetBodyString(mail.TypeTextPlain, directoryMissBody(event))
				case report.EventEmptyDocument:
					m.Subject(fmt.Sprintf("Guardias %s - calendario vacío", event.LocationID))
					m.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
						"El PDF de %s no produjo ningún registro el %s. Revisar si el colegio ha cambiado el formato.",
						event.LocationID, event.OccurredAt.Format("02-01-2006 15:04")))
				default:
					logger.Error("tipo de evento no soportado", slog.String("type", event.Type))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("no se pudo enviar el aviso", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // reencolar
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("esperando eventos... (CTRL+C para salir)")
	<-sigChan

	slog.Info("apagando el notificador...")
	cancel()
	wg.Wait()
	slog.Info("notificador apagado correctamente")
}

func directoryMissBody(event report.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "El calendario de %s contiene entradas sin ficha en el directorio (%s):\n\n",
		event.LocationID, event.OccurredAt.Format("02-01-2006 15:04"))
	for _, miss := range event.Misses {
		if miss.ZoneID != "" {
			fmt.Fprintf(&b, "  - %q (zona %s)\n", miss.RawToken, miss.ZoneID)
		} else {
			fmt.Fprintf(&b, "  - %q\n", miss.RawToken)
		}
	}
	b.WriteString("\nSe ha servido una ficha provisional con el nombre del municipio.\n")
	return b.String()
}

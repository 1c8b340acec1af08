package conversation

import "github.com/Shino972/GarantGiftsTelegramBot/internal/domain"

// State — состояние многошагового диалога. Закрытое объединение:
// по одному варианту на поток, каждый несёт ровно свои поля.
type State interface {
	isState()
}

// AwaitWallet — ждём новый адрес TON-кошелька.
type AwaitWallet struct {
	MessageID int // сообщение бота, которое редактируем
}

// AwaitCard — ждём номер карты.
type AwaitCard struct {
	MessageID int
}

// AwaitDealCurrency — показаны кнопки выбора валюты.
type AwaitDealCurrency struct {
	MessageID int
}

// AwaitDealAmount — валюта выбрана, ждём сумму.
type AwaitDealAmount struct {
	MessageID int
	Currency  domain.Currency
}

// AwaitDealDescription — сумма принята, ждём описание подарков.
type AwaitDealDescription struct {
	MessageID int
	Currency  domain.Currency
	Amount    float64
}

// AwaitDisputeText — участник сделки описывает проблему.
type AwaitDisputeText struct {
	MessageID int
	DealID    string
}

// AwaitDisputeReply — модератор пишет ответ по спору.
type AwaitDisputeReply struct {
	MessageID int
	DealID    string
	TargetID  int64 // кому доставить ответ
}

// AwaitAdminTarget — админ вводит ID пользователя для корректировки.
type AwaitAdminTarget struct {
	MessageID int
	Sign      float64 // +1 увеличение, -1 уменьшение
}

// AwaitAdminAmount — админ вводит сумму корректировки.
type AwaitAdminAmount struct {
	MessageID int
	Sign      float64
	TargetID  int64
}

// AwaitBroadcastText — админ вводит текст рассылки.
type AwaitBroadcastText struct {
	MessageID int
}

func (AwaitWallet) isState()          {}
func (AwaitCard) isState()            {}
func (AwaitDealCurrency) isState()    {}
func (AwaitDealAmount) isState()      {}
func (AwaitDealDescription) isState() {}
func (AwaitDisputeText) isState()     {}
func (AwaitDisputeReply) isState()    {}
func (AwaitAdminTarget) isState()     {}
func (AwaitAdminAmount) isState()     {}
func (AwaitBroadcastText) isState()   {}

package carrier

import (
	"encoding/xml"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/order"
)

// shipmentNamespace is the XML namespace of the carrier's contract shipping
// schema.
const shipmentNamespace = "http://www.canadapost.ca/ws/shipment-v8"

// Fixed parcel profile. Every order ships in the same box.
const (
	serviceCodeExpedited   = "DOM.EP"
	optionCodeDeliveryConf = "DC"
	parcelWeightKg         = "1.8"
	parcelLengthCm         = "35"
	parcelWidthCm          = "25"
	parcelHeightCm         = "5"
)

type addressDetails struct {
	AddressLine1  string `xml:"address-line-1"`
	City          string `xml:"city"`
	ProvState     string `xml:"prov-state"`
	PostalZipCode string `xml:"postal-zip-code"`
}

type senderSpec struct {
	Name           string         `xml:"name"`
	Company        string         `xml:"company"`
	ContactPhone   string         `xml:"contact-phone"`
	AddressDetails addressDetails `xml:"address-details"`
}

type destinationSpec struct {
	Name           string         `xml:"name"`
	Company        string         `xml:"company"`
	AddressDetails addressDetails `xml:"address-details"`
}

type optionSpec struct {
	OptionCode string `xml:"option-code"`
}

type dimensionsSpec struct {
	Length string `xml:"length"`
	Width  string `xml:"width"`
	Height string `xml:"height"`
}

type parcelCharacteristics struct {
	Weight     string         `xml:"weight"`
	Dimensions dimensionsSpec `xml:"dimensions"`
}

type preferencesSpec struct {
	ShowPackingInstructions string `xml:"show-packing-instructions"`
	ShowPostageRate         string `xml:"show-postage-rate"`
}

type referencesSpec struct {
	CustomerRef1 string `xml:"customer-ref-1"`
}

type settlementInfo struct {
	PaidByCustomer string `xml:"paid-by-customer"`
	ContractID     string `xml:"contract-id"`
}

type deliverySpec struct {
	ServiceCode           string                `xml:"service-code"`
	Sender                senderSpec            `xml:"sender"`
	Destination           destinationSpec       `xml:"destination"`
	Options               []optionSpec          `xml:"options>option"`
	ParcelCharacteristics parcelCharacteristics `xml:"parcel-characteristics"`
	Preferences           preferencesSpec       `xml:"preferences"`
	References            referencesSpec        `xml:"references"`
	SettlementInfo        settlementInfo        `xml:"settlement-info"`
}

// shipmentRequest is the create-shipment document. transmit-shipment makes
// the carrier manifest it immediately instead of leaving it in a draft state.
type shipmentRequest struct {
	XMLName                xml.Name     `xml:"shipment"`
	Xmlns                  string       `xml:"xmlns,attr"`
	TransmitShipment       string       `xml:"transmit-shipment"`
	RequestedShippingPoint string       `xml:"requested-shipping-point"`
	DeliverySpec           deliverySpec `xml:"delivery-spec"`
}

// Sender describes the shipping origin placed on every label.
type Sender struct {
	Name         string
	Company      string
	ContactPhone string
	Address      string
	City         string
	Province     string
	PostalCode   string
}

// buildShipmentRequest assembles the create-shipment document for one order.
// The destination company field doubles as packing information: quantity and
// SKU of the first order line.
func buildShipmentRequest(ord *order.Order, sender Sender, contractID, paidByCustomer string) ([]byte, error) {
	address, err := ord.ShippingAddress()
	if err != nil {
		return nil, err
	}

	var contents string
	if lines := ord.Lines(); len(lines) > 0 {
		contents = fmt.Sprintf("%dx %s", lines[0].Quantity, lines[0].SKU)
	}

	request := shipmentRequest{
		Xmlns:                  shipmentNamespace,
		TransmitShipment:       "true",
		RequestedShippingPoint: strings.ReplaceAll(sender.PostalCode, " ", ""),
		DeliverySpec: deliverySpec{
			ServiceCode: serviceCodeExpedited,
			Sender: senderSpec{
				Name:         sender.Name,
				Company:      sender.Company,
				ContactPhone: sender.ContactPhone,
				AddressDetails: addressDetails{
					AddressLine1:  sender.Address,
					City:          sender.City,
					ProvState:     sender.Province,
					PostalZipCode: sender.PostalCode,
				},
			},
			Destination: destinationSpec{
				Name:    address.FullName(),
				Company: contents,
				AddressDetails: addressDetails{
					AddressLine1:  address.Street(),
					City:          address.City(),
					ProvState:     address.Province(),
					PostalZipCode: address.PostalCode(),
				},
			},
			Options: []optionSpec{{OptionCode: optionCodeDeliveryConf}},
			ParcelCharacteristics: parcelCharacteristics{
				Weight: parcelWeightKg,
				Dimensions: dimensionsSpec{
					Length: parcelLengthCm,
					Width:  parcelWidthCm,
					Height: parcelHeightCm,
				},
			},
			Preferences: preferencesSpec{
				ShowPackingInstructions: "true",
				ShowPostageRate:         "false",
			},
			References:     referencesSpec{CustomerRef1: ord.ID()},
			SettlementInfo: settlementInfo{PaidByCustomer: paidByCustomer, ContractID: contractID},
		},
	}

	document, err := xml.MarshalIndent(request, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), document...), nil
}

// link is one hypermedia reference in a carrier response.
type link struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// destinationEcho is the destination block echoed back in the create-shipment
// response; the structural validation gate compares it against the order.
type destinationEcho struct {
	Name          string `xml:"name"`
	PostalZipCode string `xml:"address-details>postal-zip-code"`
}

// createShipmentResponse picks the fields the engine needs out of the
// carrier's response document.
type createShipmentResponse struct {
	TrackingPin string          `xml:"tracking-pin"`
	Links       []link          `xml:"links>link"`
	Destination destinationEcho `xml:"delivery-spec>destination"`
}

// labelLink returns the href of the label artifact reference, empty when the
// response carries none.
func (r createShipmentResponse) labelLink() string {
	for _, l := range r.Links {
		if l.Rel == "label" {
			return l.Href
		}
	}
	return ""
}

package hid

import "fmt"

// ServiceClassUUID is the Bluetooth-assigned HID service class UUID BlueZ
// keys the profile registration on.
const ServiceClassUUID = "00001124-0000-1000-8000-00805f9b34fb"

// serviceRecordXML builds the SDP record BlueZ's ProfileManager1.RegisterProfile
// expects in its "ServiceRecord" option, with the HID report descriptor
// embedded as attribute 0x0206's hex-encoded text value.
func serviceRecordXML(deviceName string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" ?>
<record>
  <attribute id="0x0001">
    <sequence><uuid value="0x1124" /></sequence>
  </attribute>
  <attribute id="0x0004">
    <sequence>
      <sequence><uuid value="0x0100" /><uint16 value="0x0100" /></sequence>
      <sequence><uuid value="0x0011" /></sequence>
      <sequence><uuid value="0x0017" /></sequence>
    </sequence>
  </attribute>
  <attribute id="0x0005">
    <sequence><uuid value="0x1002" /></sequence>
  </attribute>
  <attribute id="0x0006">
    <sequence>
      <uint16 value="0x656e" /><uint16 value="0x006a" /><uint16 value="0x0100" />
    </sequence>
  </attribute>
  <attribute id="0x000d">
    <sequence>
      <sequence>
        <sequence><uint16 value="0x0100" /><uint16 value="0x0011" /></sequence>
        <sequence><uint16 value="0x0011" /></sequence>
      </sequence>
    </sequence>
  </attribute>
  <attribute id="0x0100"><text value="%s" /></attribute>
  <attribute id="0x0101"><text value="%s Bluetooth HID" /></attribute>
  <attribute id="0x0200"><uint16 value="0x0100" /></attribute>
  <attribute id="0x0201"><uint16 value="0x0111" /></attribute>
  <attribute id="0x0202"><uint8 value="0x80" /></attribute>
  <attribute id="0x0203"><uint8 value="0x00" /></attribute>
  <attribute id="0x0204"><boolean value="true" /></attribute>
  <attribute id="0x0205"><boolean value="true" /></attribute>
  <attribute id="0x0206">
    <sequence>
      <sequence><uint8 value="0x22" /><text encoding="hex" value="%s" /></sequence>
    </sequence>
  </attribute>
  <attribute id="0x0207">
    <sequence>
      <sequence><uint16 value="0x0100" /><uint16 value="0x0001" /></sequence>
    </sequence>
  </attribute>
</record>
`, deviceName, deviceName, descriptorHex())
}
